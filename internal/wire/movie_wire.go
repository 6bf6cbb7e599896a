package wire

import (
	"showscape/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", movieHandler.GetMovies)    // GET /api/movies
		r.Post("/", movieHandler.CreateMovie) // POST /api/movies

		// Filter options
		r.Get("/genres", movieHandler.GetGenres) // GET /api/movies/genres
		r.Get("/years", movieHandler.GetYears)   // GET /api/movies/years

		// Filters
		r.Get("/genre/{genre}", movieHandler.GetMoviesByGenre) // GET /api/movies/genre/{genre}
		r.Get("/year/{year}", movieHandler.GetMoviesByYear)    // GET /api/movies/year/{year}

		r.Get("/{id}", movieHandler.GetMovieByID)   // GET /api/movies/{id}
		r.Put("/{id}", movieHandler.UpdateMovie)    // PUT /api/movies/{id}
		r.Delete("/{id}", movieHandler.DeleteMovie) // DELETE /api/movies/{id}
	})
}
