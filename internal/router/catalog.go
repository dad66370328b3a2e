// Package router binds the inbound catalog surface: every handler checks
// its required raw parameters, sanitizes the rest and delegates to the
// upstream client. Upstream bodies pass through unmodified.
package router

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deadanime/proxy/internal/apperr"
	"github.com/deadanime/proxy/internal/config"
	"github.com/deadanime/proxy/internal/sanitize"
	"github.com/deadanime/proxy/internal/upstream"
)

const serviceVersion = "1.0.0"

type CatalogRouterOption func(*CatalogRouter)

func WithLogger(l *slog.Logger) CatalogRouterOption {
	return func(r *CatalogRouter) {
		r.log = l
	}
}

type CatalogRouter struct {
	e        *echo.Echo
	upstream *upstream.Client
	cfg      *config.Config
	log      *slog.Logger
}

func NewCatalogRouter(e *echo.Echo, client *upstream.Client, cfg *config.Config, opts ...CatalogRouterOption) *CatalogRouter {
	r := &CatalogRouter{
		e:        e,
		upstream: client,
		cfg:      cfg,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *CatalogRouter) Bind() {
	r.e.GET("/", r.metadataHandler)
	r.e.GET("/api/stats", r.statsHandler)

	da := r.e.Group("/api/deadanime")
	da.GET("/list", r.listHandler)
	da.GET("/anime", r.animeHandler)
	da.GET("/episode", r.episodeHandler)
	da.GET("/movie", r.movieHandler)
	da.GET("/pack", r.packHandler)
}

type serviceInfo struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Environment string   `json:"environment"`
	Endpoints   []string `json:"endpoints"`
}

func (r *CatalogRouter) metadataHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, serviceInfo{
		Name:        "deadanime-proxy",
		Version:     serviceVersion,
		Environment: string(r.cfg.Env),
		Endpoints: []string{
			"/api/health",
			"/api/stats",
			"/api/deadanime/list",
			"/api/deadanime/anime",
			"/api/deadanime/episode",
			"/api/deadanime/movie",
			"/api/deadanime/pack",
		},
	})
}

// listHandler godoc
// @Summary List catalog entries
// @Param search query string false "search term, max 200 chars"
// @Param limit query int false "page size, 1..100, default 12"
// @Param page query int false "page number, min 1"
// @Produce json
// @Success 200 {object} object
// @Router /api/deadanime/list [get]
func (r *CatalogRouter) listHandler(c echo.Context) error {
	return r.proxy(c, upstream.EndpointList)
}

// animeHandler godoc
// @Summary Anime detail
// @Param slug query string true "anime slug"
// @Produce json
// @Success 200 {object} object
// @Failure 400 {object} apperr.Envelope
// @Router /api/deadanime/anime [get]
func (r *CatalogRouter) animeHandler(c echo.Context) error {
	if err := r.requireParam(c, "slug"); err != nil {
		return err
	}
	return r.proxy(c, upstream.EndpointAnime)
}

// episodeHandler godoc
// @Summary Episode detail
// @Param slug query string true "anime slug"
// @Param season query int false "season number, min 1"
// @Param episode query int false "episode number, min 1"
// @Produce json
// @Success 200 {object} object
// @Failure 400 {object} apperr.Envelope
// @Router /api/deadanime/episode [get]
func (r *CatalogRouter) episodeHandler(c echo.Context) error {
	if err := r.requireParam(c, "slug"); err != nil {
		return err
	}
	return r.proxy(c, upstream.EndpointEpisode)
}

// movieHandler godoc
// @Summary Movie detail
// @Param slug query string true "movie slug"
// @Produce json
// @Success 200 {object} object
// @Failure 400 {object} apperr.Envelope
// @Router /api/deadanime/movie [get]
func (r *CatalogRouter) movieHandler(c echo.Context) error {
	if err := r.requireParam(c, "slug"); err != nil {
		return err
	}
	return r.proxy(c, upstream.EndpointMovie)
}

// packHandler godoc
// @Summary Episode pack
// @Param season_id query string true "season id"
// @Param start_ep query int false "first episode, min 1"
// @Param end_ep query int false "last episode, 1..10000, default 100"
// @Produce json
// @Success 200 {object} object
// @Failure 400 {object} apperr.Envelope
// @Router /api/deadanime/pack [get]
func (r *CatalogRouter) packHandler(c echo.Context) error {
	if err := r.requireParam(c, "season_id"); err != nil {
		return err
	}
	return r.proxy(c, upstream.EndpointPack)
}

// requireParam rejects the request before any outbound call is attempted.
func (r *CatalogRouter) requireParam(c echo.Context, name string) error {
	if strings.TrimSpace(c.QueryParam(name)) == "" {
		return apperr.MissingParam(name)
	}
	return nil
}

func (r *CatalogRouter) proxy(c echo.Context, endpoint string) error {
	params := sanitize.Sanitize(c.QueryParams())

	body, err := r.upstream.Get(c.Request().Context(), endpoint, params)
	if err != nil {
		return err
	}

	if endpoint == upstream.EndpointEpisode || endpoint == upstream.EndpointMovie {
		r.checkPlayableSources(endpoint, body, c.QueryParam("slug"))
	}

	return c.JSONBlob(http.StatusOK, body)
}

// checkPlayableSources emits a diagnostic when an episode or movie body
// carries neither a sources array nor a url/video_url field. Best effort:
// the response itself is never altered.
func (r *CatalogRouter) checkPlayableSources(endpoint string, body []byte, slug string) {
	var probe struct {
		Sources  []json.RawMessage `json:"sources"`
		URL      string            `json:"url"`
		VideoURL string            `json:"video_url"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return
	}
	if len(probe.Sources) == 0 && probe.URL == "" && probe.VideoURL == "" {
		r.log.Warn("upstream response has no playable sources",
			"endpoint", endpoint,
			"slug", slug,
		)
	}
}
