package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIRouter(t *testing.T, cache *TimedCache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.GET("/skills", skillsHandler)
	api.GET("/certifications", certificationsHandler)
	api.GET("/timeline", timelineHandler)
	api.GET("/state/:section", getStateHandler(cache))
	api.PUT("/state/:section", putStateHandler(cache))
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string, dest any) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if dest != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
	}
	return w.Code
}

func TestSkillsEndpointFiltersAndSorts(t *testing.T) {
	r := newAPIRouter(t, NewTimedCache(NewMemoryStore()))

	var resp struct {
		Items []Skill  `json:"items"`
		Tags  []string `json:"tags"`
	}
	code := getJSON(t, r, "/api/skills?tag=highlighted&sort=name-asc", &resp)
	require.Equal(t, http.StatusOK, code)

	require.NotEmpty(t, resp.Items)
	for _, s := range resp.Items {
		assert.True(t, s.Highlight)
	}
	assert.Contains(t, resp.Tags, TagHighlighted)
	assert.Contains(t, resp.Tags, TagNotHighlighted)
	assert.Equal(t, TagAll, resp.Tags[0])
}

func TestTimelineEndpointTagFilter(t *testing.T) {
	r := newAPIRouter(t, NewTimedCache(NewMemoryStore()))

	var resp struct {
		Items []TimelineItem `json:"items"`
	}
	code := getJSON(t, r, "/api/timeline?tag=education", &resp)
	require.Equal(t, http.StatusOK, code)

	require.NotEmpty(t, resp.Items)
	for _, item := range resp.Items {
		assert.Equal(t, "education", item.Kind)
	}
}

func TestCertificationsEndpointNoMatchIsEmpty(t *testing.T) {
	r := newAPIRouter(t, NewTimedCache(NewMemoryStore()))

	var resp struct {
		Items []Certification `json:"items"`
	}
	code := getJSON(t, r, "/api/certifications?q=zzz-no-match", &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp.Items)
}

func TestFilterStateRoundTrip(t *testing.T) {
	r := newAPIRouter(t, NewTimedCache(NewMemoryStore()))

	body := `{"search":"go","selected_tag":"languages","sort_key":"newest"}`
	req := httptest.NewRequest(http.MethodPut, "/api/state/skills", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var state FilterState
	code := getJSON(t, r, "/api/state/skills", &state)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "go", state.Search)
	assert.Equal(t, "languages", state.SelectedTag)
	assert.Equal(t, SortNewest, state.SortKey)
}

func TestFilterStateDefaultsWhenUnsaved(t *testing.T) {
	r := newAPIRouter(t, NewTimedCache(NewMemoryStore()))

	var state FilterState
	code := getJSON(t, r, "/api/state/projects", &state)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, DefaultFilterState(), state)
}

func TestFilterStateUnknownSection(t *testing.T) {
	r := newAPIRouter(t, NewTimedCache(NewMemoryStore()))

	code := getJSON(t, r, "/api/state/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)

	req := httptest.NewRequest(http.MethodPut, "/api/state/nope", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
