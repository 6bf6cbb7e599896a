package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"showscape/internal/data/entity"
	"showscape/internal/data/repository"
	"showscape/internal/dto/request"
	"showscape/internal/dto/response"
	"showscape/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID int64, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID int64) error
	GetMoviesByGenre(ctx context.Context, genre string) ([]response.MovieResponse, error)
	GetMoviesByYear(ctx context.Context, year int) ([]response.MovieResponse, error)
	GetGenres(ctx context.Context) ([]string, error)
	GetYears(ctx context.Context) ([]int, error)
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func notFound(movieID int64) error {
	return fmt.Errorf("%w with id: %d", ErrMovieNotFound, movieID)
}

// validate checks the request and returns the parsed release date
func (s *movieService) validate(req *request.MovieRequest) (time.Time, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Movie validation failed", zap.Any("errors", errs))
		return time.Time{}, &ValidationError{Fields: errs}
	}

	releaseDate, err := time.Parse(entity.DateLayout, req.ReleaseDate)
	if err != nil {
		return time.Time{}, &ValidationError{Fields: []utils.FieldError{{
			Field:   "releaseDate",
			Message: "Must be a date in the format YYYY-MM-DD",
		}}}
	}
	return releaseDate, nil
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get movies", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}

	s.log.Debug("Movies retrieved", zap.Int("count", len(movies)))
	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, notFound(movieID)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	releaseDate, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	movie := &entity.Movie{
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Genre:       req.Genre,
		Rating:      *req.Rating,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", req.Title),
		)
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID int64, req *request.MovieRequest) (*response.MovieResponse, error) {
	releaseDate, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		s.log.Warn("Update of missing movie", zap.Int64("movie_id", movieID))
		return nil, notFound(movieID)
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.ReleaseDate = releaseDate
	movie.Genre = req.Genre
	movie.Rating = *req.Rating

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		// deleted between the lookup and the write
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(movieID)
		}
		s.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", movieID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID int64) error {
	if err := s.repo.Movie.Delete(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("Delete of missing movie", zap.Int64("movie_id", movieID))
			return notFound(movieID)
		}
		s.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", movieID))
	return nil
}

func (s *movieService) GetMoviesByGenre(ctx context.Context, genre string) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindByGenre(ctx, genre)
	if err != nil {
		s.log.Error("Failed to get movies by genre",
			zap.Error(err),
			zap.String("genre", genre),
		)
		return nil, fmt.Errorf("get movies by genre: %w", err)
	}
	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMoviesByYear(ctx context.Context, year int) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindByReleaseYear(ctx, year)
	if err != nil {
		s.log.Error("Failed to get movies by year",
			zap.Error(err),
			zap.Int("year", year),
		)
		return nil, fmt.Errorf("get movies by year: %w", err)
	}
	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetGenres(ctx context.Context) ([]string, error) {
	genres, err := s.repo.Movie.FindDistinctGenres(ctx)
	if err != nil {
		s.log.Error("Failed to get genres", zap.Error(err))
		return nil, fmt.Errorf("get genres: %w", err)
	}
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}

func (s *movieService) GetYears(ctx context.Context) ([]int, error) {
	years, err := s.repo.Movie.FindDistinctReleaseYears(ctx)
	if err != nil {
		s.log.Error("Failed to get release years", zap.Error(err))
		return nil, fmt.Errorf("get release years: %w", err)
	}
	if years == nil {
		years = []int{}
	}
	return years, nil
}
