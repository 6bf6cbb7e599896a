package repository

import (
	"errors"

	"showscape/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned by mutations addressed at a missing row.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	Movie MovieRepository
}

// NewRepository builds repositories backed by the Postgres pool
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewMovieRepository(db, log),
	}
}

// NewGormRepository builds repositories backed by a gorm connection
func NewGormRepository(db *gorm.DB, log *zap.Logger) (*Repository, error) {
	if err := db.AutoMigrate(&movieRecord{}); err != nil {
		return nil, err
	}
	return &Repository{
		Movie: NewMovieGormRepository(db, log),
	}, nil
}
