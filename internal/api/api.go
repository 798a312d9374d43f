package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"newswire/internal/catalog"
	"newswire/internal/story"
)

// Catalog is the part of catalog.Service the HTTP layer needs.
type Catalog interface {
	FetchTopStories(ctx context.Context, forceRefresh bool) (catalog.StoriesResult, error)
	FetchStoryByID(ctx context.Context, id string) (catalog.StoryResult, error)
	StoryBySlug(ctx context.Context, slug string) (catalog.StoryResult, bool, error)
	RecommendedStories(ctx context.Context, id int64) []story.Story
}

type storiesResponse struct {
	Origin  catalog.Origin `json:"origin"`
	Stories []story.Story  `json:"stories"`
}

type storyResponse struct {
	Origin         catalog.Origin `json:"origin"`
	Story          story.Story    `json:"story"`
	SimilarStories []story.Story  `json:"similar_stories,omitempty"`
}

type recommendationsResponse struct {
	Stories []story.Story `json:"stories"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	catalog Catalog
	logger  *log.Logger
}

func NewRouter(c Catalog, logger *log.Logger) *mux.Router {
	if logger == nil {
		logger = log.Default()
	}
	h := &handler{catalog: c, logger: logger}

	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stories", h.topStories).Methods(http.MethodGet)
	api.HandleFunc("/stories/{id}", h.storyByID).Methods(http.MethodGet)
	api.HandleFunc("/stories/{id}/recommendations", h.recommendations).Methods(http.MethodGet)
	api.HandleFunc("/slugs/{slug}", h.storyBySlug).Methods(http.MethodGet)

	return r
}

func (h *handler) topStories(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	res, err := h.catalog.FetchTopStories(r.Context(), force)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.write(w, http.StatusOK, storiesResponse{Origin: res.Origin, Stories: res.Stories})
}

func (h *handler) storyByID(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalog.FetchStoryByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	h.write(w, http.StatusOK, storyResponse{
		Origin:         res.Origin,
		Story:          res.Story,
		SimilarStories: res.Similar,
	})
}

func (h *handler) recommendations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 0 {
		h.fail(w, catalog.ErrInvalidIdentifier)
		return
	}
	h.write(w, http.StatusOK, recommendationsResponse{Stories: h.catalog.RecommendedStories(r.Context(), id)})
}

func (h *handler) storyBySlug(w http.ResponseWriter, r *http.Request) {
	res, ok, err := h.catalog.StoryBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.fail(w, err)
		return
	}
	if !ok {
		h.fail(w, catalog.ErrNotFound)
		return
	}
	h.write(w, http.StatusOK, storyResponse{Origin: res.Origin, Story: res.Story})
}

// fail maps catalog errors onto HTTP statuses. Invalid identifiers are
// reported as a missing story.
func (h *handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidIdentifier), errors.Is(err, catalog.ErrNotFound):
		h.write(w, http.StatusNotFound, errorResponse{Error: catalog.ErrNotFound.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.write(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		h.logger.Printf("api: unexpected error: %v", err)
		h.write(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *handler) write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Printf("api: failed to encode response: %v", err)
	}
}
