package main

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entity is the capability set the filter/sort pipeline works against.
// Projects, skills, certifications, and timeline items all satisfy it, so
// the pipeline is written once instead of per page.
type Entity interface {
	EntityName() string
	SearchText() string
	EntityTags() []string
	SortDate() time.Time
	Highlighted() bool
}

// SortKey selects the pipeline ordering. Exactly one is active at a time.
type SortKey string

const (
	SortNameAsc     SortKey = "name-asc"
	SortNameDesc    SortKey = "name-desc"
	SortNewest      SortKey = "newest"
	SortOldest      SortKey = "oldest"
	SortHighlighted SortKey = "highlighted"
)

// Selectable tag sentinels. TagAll passes everything; the highlight
// pseudo-tags match the entity highlight flag instead of the tag set.
const (
	TagAll            = "all"
	TagHighlighted    = "highlighted"
	TagNotHighlighted = "not-highlighted"
)

// ParseSortKey maps a query parameter onto a SortKey, defaulting to
// name-ascending for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNameDesc, SortNewest, SortOldest, SortHighlighted:
		return SortKey(s)
	default:
		return SortNameAsc
	}
}

// FilterState is the per-section view state persisted through the
// TimedCache so it survives reloads within the TTL window.
type FilterState struct {
	Search      string  `json:"search"`
	SelectedTag string  `json:"selected_tag"`
	SortKey     SortKey `json:"sort_key"`
}

// DefaultFilterState is what a section renders with when nothing is saved.
func DefaultFilterState() FilterState {
	return FilterState{SelectedTag: TagAll, SortKey: SortNameAsc}
}

// FilterSort produces a new, ordered, filtered view of items. Input entities
// are never mutated and keep their identity; only membership and order of
// the returned slice differ. An empty search matches everything; a tag with
// no matches yields an empty result, never an error.
func FilterSort[E Entity](items []E, search, selectedTag string, key SortKey) []E {
	out := make([]E, 0, len(items))
	for _, item := range items {
		if matchesSearch(item, search) && matchesTag(item, selectedTag) {
			out = append(out, item)
		}
	}
	sortEntities(out, key)
	return out
}

func matchesSearch(e Entity, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.EntityName()), search) {
		return true
	}
	if strings.Contains(strings.ToLower(e.SearchText()), search) {
		return true
	}
	for _, tag := range e.EntityTags() {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func matchesTag(e Entity, selectedTag string) bool {
	selectedTag = strings.ToLower(strings.TrimSpace(selectedTag))
	switch selectedTag {
	case "", TagAll:
		return true
	case TagHighlighted:
		return e.Highlighted()
	case TagNotHighlighted:
		return !e.Highlighted()
	}
	for _, tag := range e.EntityTags() {
		if strings.ToLower(tag) == selectedTag {
			return true
		}
	}
	return false
}

func sortEntities[E Entity](items []E, key SortKey) {
	coll := collate.New(language.English, collate.IgnoreCase)

	byName := func(i, j int) bool {
		return coll.CompareString(items[i].EntityName(), items[j].EntityName()) < 0
	}

	sort.SliceStable(items, func(i, j int) bool {
		switch key {
		case SortNameDesc:
			return coll.CompareString(items[i].EntityName(), items[j].EntityName()) > 0
		case SortNewest:
			a, b := items[i].SortDate(), items[j].SortDate()
			if !a.Equal(b) {
				return a.After(b)
			}
			return byName(i, j)
		case SortOldest:
			a, b := items[i].SortDate(), items[j].SortDate()
			if !a.Equal(b) {
				return a.Before(b)
			}
			return byName(i, j)
		case SortHighlighted:
			if items[i].Highlighted() != items[j].Highlighted() {
				return items[i].Highlighted()
			}
			return byName(i, j)
		default:
			return byName(i, j)
		}
	})
}

// ExtractTags derives the selectable tag universe for a collection: the
// lowercased union of every entity's tags with the "all" sentinel
// prepended. The rest of the list is ordered alphabetically so the result
// is deterministic.
func ExtractTags[E Entity](items []E) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, tag := range item.EntityTags() {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag != "" {
				seen[tag] = struct{}{}
			}
		}
	}

	tags := make([]string, 0, len(seen)+1)
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return append([]string{TagAll}, tags...)
}

// entityDateLayouts are tried in order when parsing entity date fields.
var entityDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"Jan 2006",
	"2006",
}

// parseEntityDate parses the loose date strings entities carry. Values that
// parse with none of the known layouts (the source data contains things
// like "TBD") come back as the zero time, which orders before every real
// date under every sort key.
func parseEntityDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range entityDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
