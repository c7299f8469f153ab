package main

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	repoPayloadKey = "github:repos"
	repoExpiryKey  = "github:repos:expiry"
	repoCacheTTL   = 5 * time.Minute
)

// RepoCache serves the merged project collection: the cached GitHub listing
// plus the manual build-time entries. The listing is persisted under two
// independent keys, the serialized payload and an absolute expiry in epoch
// milliseconds, both written together on refresh. While the expiry is in the
// future the cached payload is served without touching the network; once
// stale, a refetch runs (collapsed across concurrent callers) and upstream
// failures fall back to the stale payload so the page always has something
// to render.
type RepoCache struct {
	storage Storage
	github  *GitHubClient
	manual  []Project
	group   singleflight.Group
	now     func() time.Time
}

func NewRepoCache(storage Storage, github *GitHubClient, manual []Project) *RepoCache {
	return &RepoCache{
		storage: storage,
		github:  github,
		manual:  manual,
		now:     time.Now,
	}
}

// Projects returns the merged, unfiltered collection and its selectable tag
// universe. It never fails: a cold cache plus a dead upstream still yields
// the manual entries.
func (rc *RepoCache) Projects(ctx context.Context) ([]Project, []string) {
	cached, fresh := rc.readCached()

	repos := cached
	if !fresh {
		fetched, err, _ := rc.group.Do("repos", func() (any, error) {
			return rc.refresh(ctx)
		})
		if err != nil {
			log.Printf("repocache: refresh failed, serving stale listing: %v", err)
		} else {
			repos = fetched.([]Project)
		}
	}

	merged := make([]Project, 0, len(repos)+len(rc.manual))
	merged = append(merged, repos...)
	merged = append(merged, rc.manual...)

	return merged, ExtractTags(merged)
}

// readCached loads the persisted listing. The second return reports
// freshness; a missing or corrupt payload is never fresh, and corrupt
// payloads are deleted so the next cycle starts clean.
func (rc *RepoCache) readCached() ([]Project, bool) {
	if rc.storage == nil {
		return nil, false
	}

	payload, ok := rc.storage.Get(repoPayloadKey)
	if !ok {
		return nil, false
	}

	var repos []Project
	if err := json.Unmarshal([]byte(payload), &repos); err != nil {
		log.Printf("repocache: removing corrupt payload: %v", err)
		rc.clear()
		return nil, false
	}

	raw, ok := rc.storage.Get(repoExpiryKey)
	if !ok {
		return repos, false
	}
	expiry, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("repocache: removing corrupt expiry: %v", err)
		rc.clear()
		return nil, false
	}

	return repos, rc.now().UnixMilli() < expiry
}

func (rc *RepoCache) clear() {
	if err := rc.storage.Delete(repoPayloadKey); err != nil {
		log.Printf("repocache: delete payload failed: %v", err)
	}
	if err := rc.storage.Delete(repoExpiryKey); err != nil {
		log.Printf("repocache: delete expiry failed: %v", err)
	}
}

func (rc *RepoCache) refresh(ctx context.Context) ([]Project, error) {
	repos, err := rc.github.ListRepos(ctx)
	if err != nil {
		return nil, err
	}

	if rc.storage != nil {
		payload, err := json.Marshal(repos)
		if err != nil {
			log.Printf("repocache: cannot serialize listing: %v", err)
			return repos, nil
		}
		expiry := rc.now().Add(repoCacheTTL).UnixMilli()
		if err := rc.storage.Put(repoPayloadKey, string(payload)); err != nil {
			log.Printf("repocache: payload write failed: %v", err)
		} else if err := rc.storage.Put(repoExpiryKey, strconv.FormatInt(expiry, 10)); err != nil {
			log.Printf("repocache: expiry write failed: %v", err)
		}
	}

	return repos, nil
}
