package entity

import (
	"time"
)

// DateLayout is the wire and storage format of a release date.
const DateLayout = "2006-01-02"

type Movie struct {
	Base
	Title       string    `db:"title"`
	Description string    `db:"description"`
	ReleaseDate time.Time `db:"release_date"`
	Genre       string    `db:"genre"`
	Rating      float64   `db:"rating"`
}

// NormalizeDate strips the clock and zone so dates compare by calendar day.
func NormalizeDate(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
