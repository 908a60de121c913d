package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/opentraining/coursecatalog/internal/application/services"
	"github.com/opentraining/coursecatalog/internal/domain/entities"
	apperrors "github.com/opentraining/coursecatalog/pkg/errors"
)

// CourseHandler handles course-related HTTP requests
type CourseHandler struct {
	searchService *services.CourseSearchService
	facetService  *services.FacetService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(searchService *services.CourseSearchService, facetService *services.FacetService) *CourseHandler {
	return &CourseHandler{
		searchService: searchService,
		facetService:  facetService,
	}
}

// ListCourses handles GET /api/courses
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	filter := entities.NormalizeCourseFilter(r.URL.Query())

	result, err := h.searchService.Search(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("course search failed")
		respondWithError(w, http.StatusInternalServerError, "failed to search courses")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetFacets handles GET /api/courses/facets.
// Always responds 200; an unreachable store yields the static snapshot.
func (h *CourseHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.facetService.Snapshot(r.Context()))
}

// GetCourse handles GET /api/courses/{slug}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		respondWithError(w, http.StatusBadRequest, "course slug is required")
		return
	}

	detail, err := h.searchService.GetBySlug(r.Context(), slug)
	if err != nil {
		if apperrors.IsNotFound(err) {
			respondWithError(w, http.StatusNotFound, "course not found")
			return
		}
		log.Error().Err(err).Str("slug", slug).Msg("failed to load course")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
