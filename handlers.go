package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// collectionResponse is the shape every portfolio listing endpoint returns:
// the filtered/sorted items plus the selectable tag universe.
type collectionResponse[E Entity] struct {
	Items []E      `json:"items"`
	Tags  []string `json:"tags"`
}

func runPipeline[E Entity](c *gin.Context, items []E, tags []string) {
	filtered := FilterSort(items, c.Query("q"), c.Query("tag"), ParseSortKey(c.Query("sort")))
	c.JSON(http.StatusOK, collectionResponse[E]{Items: filtered, Tags: tags})
}

// projectsHandler serves the merged GitHub + manual project collection
// through the pipeline. A dead upstream still returns 200 with whatever the
// cache and the manual list provide.
func projectsHandler(repos *RepoCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, tags := repos.Projects(c.Request.Context())
		runPipeline(c, projects, tags)
	}
}

func skillsHandler(c *gin.Context) {
	runPipeline(c, Skills, append(ExtractTags(Skills), TagHighlighted, TagNotHighlighted))
}

func certificationsHandler(c *gin.Context) {
	runPipeline(c, Certifications, ExtractTags(Certifications))
}

func timelineHandler(c *gin.Context) {
	runPipeline(c, Timeline, ExtractTags(Timeline))
}

// stateSections whitelists the UI sections that may persist filter state.
var stateSections = map[string]bool{
	"projects":       true,
	"skills":         true,
	"certifications": true,
	"timeline":       true,
}

func stateKey(section string) string {
	return "state:" + section
}

// getStateHandler returns the persisted filter state for a section, or the
// defaults once the TTL has lapsed.
func getStateHandler(cache *TimedCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		section := c.Param("section")
		if !stateSections[section] {
			c.JSON(http.StatusNotFound, gin.H{"message": "Unknown section"})
			return
		}

		state := DefaultFilterState()
		cache.Get(stateKey(section), &state, DefaultCacheTTL)
		c.JSON(http.StatusOK, state)
	}
}

func putStateHandler(cache *TimedCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		section := c.Param("section")
		if !stateSections[section] {
			c.JSON(http.StatusNotFound, gin.H{"message": "Unknown section"})
			return
		}

		var state FilterState
		if err := c.ShouldBindJSON(&state); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid filter state"})
			return
		}
		state.SortKey = ParseSortKey(string(state.SortKey))

		cache.Set(stateKey(section), state)
		c.JSON(http.StatusOK, state)
	}
}
