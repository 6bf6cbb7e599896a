package request

// MovieRequest is the create/update payload. Every mutable field is
// replaced on update.
type MovieRequest struct {
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description"`
	ReleaseDate string   `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Genre       string   `json:"genre" validate:"notblank"`
	Rating      *float64 `json:"rating" validate:"required,gte=0,lte=10"`
}
