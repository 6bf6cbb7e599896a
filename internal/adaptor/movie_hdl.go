package adaptor

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"showscape/internal/dto/request"
	"showscape/internal/usecase"
	"showscape/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMovies(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get movies")
		return
	}
	utils.ResponseSuccess(w, r, movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID, ok := h.movieID(w, r)
	if !ok {
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, r, err, "get movie by ID")
		return
	}
	utils.ResponseSuccess(w, r, movie)
}

// CreateMovie handles POST /api/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, r, err.Error(), nil)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "create movie")
		return
	}
	utils.ResponseCreated(w, r, movie)
}

// UpdateMovie handles PUT /api/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := h.movieID(w, r)
	if !ok {
		return
	}

	var req request.MovieRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, r, err.Error(), nil)
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), movieID, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "update movie")
		return
	}
	utils.ResponseSuccess(w, r, movie)
}

// DeleteMovie handles DELETE /api/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := h.movieID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMovie(r.Context(), movieID); err != nil {
		h.handleServiceError(w, r, err, "delete movie")
		return
	}
	utils.ResponseNoContent(w)
}

// GetMoviesByGenre handles GET /api/movies/genre/{genre}
func (h *MovieHandler) GetMoviesByGenre(w http.ResponseWriter, r *http.Request) {
	genre := chi.URLParam(r, "genre")
	// chi matches on the raw path when the client escaped reserved characters
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(genre)
		if err != nil {
			utils.ResponseBadRequest(w, r, "invalid genre", nil)
			return
		}
		genre = unescaped
	}

	movies, err := h.service.GetMoviesByGenre(r.Context(), genre)
	if err != nil {
		h.handleServiceError(w, r, err, "get movies by genre")
		return
	}
	utils.ResponseSuccess(w, r, movies)
}

// GetMoviesByYear handles GET /api/movies/year/{year}
func (h *MovieHandler) GetMoviesByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		utils.ResponseBadRequest(w, r, "invalid year", nil)
		return
	}

	movies, err := h.service.GetMoviesByYear(r.Context(), year)
	if err != nil {
		h.handleServiceError(w, r, err, "get movies by year")
		return
	}
	utils.ResponseSuccess(w, r, movies)
}

// GetGenres handles GET /api/movies/genres
func (h *MovieHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.GetGenres(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get genres")
		return
	}
	utils.ResponseSuccess(w, r, genres)
}

// GetYears handles GET /api/movies/years
func (h *MovieHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.service.GetYears(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get years")
		return
	}
	utils.ResponseSuccess(w, r, years)
}

// handleServiceError maps service failures to status codes
func (h *MovieHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.Is(err, usecase.ErrMovieNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, r, err.Error())

	case errors.As(err, &validationErr):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, r, "Validation failed", validationErr.Fields)

	default:
		requestID, _ := utils.GetRequestIDFromContext(r.Context())
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("request_id", requestID))
		utils.ResponseInternalError(w, r, "An unexpected error occurred")
	}
}

// movieID parses the {id} path parameter, writing a 400 when it is not
// a positive integer
func (h *MovieHandler) movieID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		utils.ResponseBadRequest(w, r, "invalid movie id", nil)
		return 0, false
	}
	return id, true
}
