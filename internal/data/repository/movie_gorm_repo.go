package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"showscape/internal/data/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// movieRecord is the gorm mapping of the movies table
type movieRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	ReleaseDate time.Time `gorm:"not null;index"`
	Genre       string    `gorm:"not null;index"`
	Rating      float64   `gorm:"not null;check:rating >= 0 AND rating <= 10"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (movieRecord) TableName() string {
	return "movies"
}

func toMovieRecord(movie *entity.Movie) *movieRecord {
	return &movieRecord{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		ReleaseDate: entity.NormalizeDate(movie.ReleaseDate),
		Genre:       movie.Genre,
		Rating:      movie.Rating,
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}
}

func (m *movieRecord) toEntity() *entity.Movie {
	return &entity.Movie{
		Base: entity.Base{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Title:       m.Title,
		Description: m.Description,
		ReleaseDate: entity.NormalizeDate(m.ReleaseDate),
		Genre:       m.Genre,
		Rating:      m.Rating,
	}
}

type movieGormRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMovieGormRepository(db *gorm.DB, log *zap.Logger) MovieRepository {
	return &movieGormRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie"), zap.String("driver", "gorm")),
	}
}

func (r *movieGormRepository) Create(ctx context.Context, movie *entity.Movie) error {
	record := toMovieRecord(movie)
	record.ID = 0

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	movie.ID = record.ID
	movie.CreatedAt = record.CreatedAt
	movie.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *movieGormRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	var record movieRecord
	err := r.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}
	return record.toEntity(), nil
}

func (r *movieGormRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	return r.list(ctx, "find all", r.db.WithContext(ctx))
}

func (r *movieGormRepository) FindByGenre(ctx context.Context, genre string) ([]*entity.Movie, error) {
	return r.list(ctx, "find by genre", r.db.WithContext(ctx).Where("genre = ?", genre))
}

func (r *movieGormRepository) FindByReleaseYear(ctx context.Context, year int) ([]*entity.Movie, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	q := r.db.WithContext(ctx).
		Where("release_date >= ? AND release_date < ?", from, from.AddDate(1, 0, 0))
	return r.list(ctx, "find by release year", q)
}

func (r *movieGormRepository) list(_ context.Context, op string, q *gorm.DB) ([]*entity.Movie, error) {
	var records []movieRecord
	if err := q.Order("id").Find(&records).Error; err != nil {
		r.log.Error("Failed to query movies",
			zap.Error(err),
			zap.String("operation", op),
		)
		return nil, fmt.Errorf("failed to %s movies: %w", op, err)
	}

	movies := make([]*entity.Movie, 0, len(records))
	for i := range records {
		movies = append(movies, records[i].toEntity())
	}
	return movies, nil
}

func (r *movieGormRepository) Update(ctx context.Context, movie *entity.Movie) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&movieRecord{}).
		Where("id = ?", movie.ID).
		Updates(map[string]any{
			"title":        movie.Title,
			"description":  movie.Description,
			"release_date": entity.NormalizeDate(movie.ReleaseDate),
			"genre":        movie.Genre,
			"rating":       movie.Rating,
			"updated_at":   now,
		})

	if result.Error != nil {
		r.log.Error("Failed to update movie",
			zap.Error(result.Error),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("failed to update movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	movie.UpdatedAt = now
	return nil
}

func (r *movieGormRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&movieRecord{}, id)
	if result.Error != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(result.Error),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("failed to delete movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (r *movieGormRepository) FindDistinctGenres(ctx context.Context) ([]string, error) {
	genres := []string{}
	err := r.db.WithContext(ctx).
		Model(&movieRecord{}).
		Distinct().
		Order("genre").
		Pluck("genre", &genres).Error
	if err != nil {
		r.log.Error("Failed to find distinct genres", zap.Error(err))
		return nil, fmt.Errorf("failed to find genres: %w", err)
	}
	return genres, nil
}

// FindDistinctReleaseYears derives years in Go since SQLite has no date type.
func (r *movieGormRepository) FindDistinctReleaseYears(ctx context.Context) ([]int, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&movieRecord{}).
		Order("release_date").
		Pluck("release_date", &dates).Error
	if err != nil {
		r.log.Error("Failed to find distinct release years", zap.Error(err))
		return nil, fmt.Errorf("failed to find release years: %w", err)
	}

	years := []int{}
	for _, d := range dates {
		if y := d.Year(); len(years) == 0 || years[len(years)-1] != y {
			years = append(years, y)
		}
	}
	return years, nil
}
