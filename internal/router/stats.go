package router

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deadanime/proxy/internal/sanitize"
	"github.com/deadanime/proxy/internal/upstream"
)

type statsResponse struct {
	TotalMovies  int    `json:"total_movies"`
	TotalSeries  int    `json:"total_series"`
	TotalFetched int    `json:"total_fetched"`
	Approximate  bool   `json:"approximate"`
	Timestamp    string `json:"timestamp"`
}

type listEntry struct {
	Type string `json:"type"`
}

// statsHandler godoc
// @Summary Approximate catalog counts
// @Description Counts derived from the first 100 list entries: type "movie" counts as movie, everything else as series.
// @Produce json
// @Success 200 {object} statsResponse
// @Router /api/stats [get]
func (r *CatalogRouter) statsHandler(c echo.Context) error {
	params := sanitize.Sanitize(url.Values{
		"limit": []string{strconv.Itoa(sanitize.MaxLimit)},
	})

	body, err := r.upstream.Get(c.Request().Context(), upstream.EndpointList, params)
	if err != nil {
		return err
	}

	entries := extractEntries(body)
	movies := 0
	for _, e := range entries {
		if e.Type == "movie" {
			movies++
		}
	}

	return c.JSON(http.StatusOK, statsResponse{
		TotalMovies:  movies,
		TotalSeries:  len(entries) - movies,
		TotalFetched: len(entries),
		Approximate:  true,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}

// extractEntries accepts either a bare array or the common wrapped shapes.
// The upstream list shape is otherwise opaque.
func extractEntries(body []byte) []listEntry {
	var direct []listEntry
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil
	}
	for _, key := range []string{"data", "results", "items", "list"} {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		var entries []listEntry
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries
		}
	}
	return nil
}
