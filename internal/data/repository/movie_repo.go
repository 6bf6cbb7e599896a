package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"showscape/internal/data/entity"
	"showscape/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// CRUD Movie
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context) ([]*entity.Movie, error)

	// Filters
	FindByGenre(ctx context.Context, genre string) ([]*entity.Movie, error)
	FindByReleaseYear(ctx context.Context, year int) ([]*entity.Movie, error)
	FindDistinctGenres(ctx context.Context) ([]string, error)
	FindDistinctReleaseYears(ctx context.Context) ([]int, error)
}

const movieColumns = `id, title, description, release_date, genre, rating, created_at, updated_at`

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.ReleaseDate,
		&movie.Genre,
		&movie.Rating,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	movie.ReleaseDate = entity.NormalizeDate(movie.ReleaseDate)
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, description, release_date, genre, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Description,
		entity.NormalizeDate(movie.ReleaseDate),
		movie.Genre,
		movie.Rating,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id`
	return r.list(ctx, "find all", query)
}

func (r *movieRepository) FindByGenre(ctx context.Context, genre string) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE genre = $1 ORDER BY id`
	return r.list(ctx, "find by genre", query, genre)
}

func (r *movieRepository) FindByReleaseYear(ctx context.Context, year int) ([]*entity.Movie, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE release_date >= $1 AND release_date < $2
		ORDER BY id
	`
	return r.list(ctx, "find by release year", query, from, from.AddDate(1, 0, 0))
}

func (r *movieRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Movie, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query movies",
			zap.Error(err),
			zap.String("operation", op),
		)
		return nil, fmt.Errorf("failed to %s movies: %w", op, err)
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Movies found",
		zap.String("operation", op),
		zap.Int("count", len(movies)),
	)

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, description = $3, release_date = $4, genre = $5, rating = $6,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		entity.NormalizeDate(movie.ReleaseDate),
		movie.Genre,
		movie.Rating,
	).Scan(&movie.CreatedAt, &movie.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (r *movieRepository) FindDistinctGenres(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT genre FROM movies ORDER BY genre`)
	if err != nil {
		r.log.Error("Failed to find distinct genres", zap.Error(err))
		return nil, fmt.Errorf("failed to find genres: %w", err)
	}

	genres, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect genres: %w", err)
	}
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}

func (r *movieRepository) FindDistinctReleaseYears(ctx context.Context) ([]int, error) {
	query := `
		SELECT DISTINCT EXTRACT(YEAR FROM release_date)::int AS year
		FROM movies
		ORDER BY year
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find distinct release years", zap.Error(err))
		return nil, fmt.Errorf("failed to find release years: %w", err)
	}

	years, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("failed to collect release years: %w", err)
	}
	if years == nil {
		years = []int{}
	}
	return years, nil
}
