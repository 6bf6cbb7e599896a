package frontend

import (
	"context"
	"strconv"
	"sync"

	"showscape/internal/dto/request"

	"go.uber.org/zap"
)

// FormValues are the editable fields of the movie form.
type FormValues struct {
	Title       string
	Description string
	ReleaseDate string
	Genre       string
	Rating      float64
}

func valuesFromMovie(m *Movie) FormValues {
	return FormValues{
		Title:       m.Title,
		Description: m.Description,
		ReleaseDate: m.ReleaseDate,
		Genre:       m.Genre,
		Rating:      m.Rating,
	}
}

func (v FormValues) toRequest() *request.MovieRequest {
	rating := v.Rating
	return &request.MovieRequest{
		Title:       v.Title,
		Description: v.Description,
		ReleaseDate: v.ReleaseDate,
		Genre:       v.Genre,
		Rating:      &rating,
	}
}

// FormState is a snapshot of the add or edit screen.
type FormState struct {
	// Status tracks loading the record being edited; add forms are always ready.
	Status  Status
	MovieID int64
	Values  FormValues
	Err     string
	Success string
}

// Editing reports whether the form updates an existing movie.
func (s FormState) Editing() bool {
	return s.MovieID != 0
}

// FormController drives the add and edit movie screens. onSaved runs after
// every successful submit, typically to reload the list.
type FormController struct {
	api     MovieAPI
	log     *zap.Logger
	onSaved func(ctx context.Context)

	mu    sync.Mutex
	state FormState
}

// NewAddForm returns a blank form that creates movies.
func NewAddForm(api MovieAPI, onSaved func(ctx context.Context), log *zap.Logger) *FormController {
	return &FormController{
		api:     api,
		log:     log.With(zap.String("controller", "movie_form")),
		onSaved: onSaved,
		state:   FormState{Status: StatusReady},
	}
}

// NewEditForm returns a form for movie id; call Load before editing.
func NewEditForm(api MovieAPI, id int64, onSaved func(ctx context.Context), log *zap.Logger) *FormController {
	f := NewAddForm(api, onSaved, log)
	f.state = FormState{Status: StatusLoading, MovieID: id}
	return f
}

func (f *FormController) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Load fetches the movie being edited into the form values.
func (f *FormController) Load(ctx context.Context) error {
	f.mu.Lock()
	id := f.state.MovieID
	f.state.Status = StatusLoading
	f.state.Err = ""
	f.mu.Unlock()

	if id == 0 {
		f.mu.Lock()
		f.state.Status = StatusReady
		f.mu.Unlock()
		return nil
	}

	movie, err := f.api.GetMovie(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.log.Warn("Failed to load movie", zap.Int64("movie_id", id), zap.Error(err))
		f.state.Status = StatusError
		f.state.Err = err.Error()
		return err
	}
	f.state.Status = StatusReady
	f.state.Values = valuesFromMovie(movie)
	return nil
}

// Set assigns one field by its JSON name. Ratings that do not parse as a
// number are rejected.
func (f *FormController) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case "title":
		f.state.Values.Title = value
	case "description":
		f.state.Values.Description = value
	case "releaseDate":
		f.state.Values.ReleaseDate = value
	case "genre":
		f.state.Values.Genre = value
	case "rating":
		rating, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return &FieldInputError{Field: field, Value: value}
		}
		f.state.Values.Rating = rating
	default:
		return &FieldInputError{Field: field, Value: value}
	}
	return nil
}

// SetValues replaces all field values at once.
func (f *FormController) SetValues(v FormValues) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Values = v
}

// Submit creates or updates the movie. On success an add form is reset
// and onSaved runs; on failure the error text is kept on the form.
func (f *FormController) Submit(ctx context.Context) (*Movie, error) {
	f.mu.Lock()
	f.state.Err = ""
	f.state.Success = ""
	id := f.state.MovieID
	req := f.state.Values.toRequest()
	f.mu.Unlock()

	var (
		movie   *Movie
		err     error
		success string
	)
	if id != 0 {
		movie, err = f.api.UpdateMovie(ctx, id, req)
		success = "Movie updated successfully!"
	} else {
		movie, err = f.api.CreateMovie(ctx, req)
		success = "Movie added successfully!"
	}

	f.mu.Lock()
	if err != nil {
		f.state.Err = err.Error()
		f.mu.Unlock()
		f.log.Warn("Failed to save movie", zap.Int64("movie_id", id), zap.Error(err))
		return nil, err
	}
	f.state.Success = success
	if id == 0 {
		f.state.Values = FormValues{}
	} else {
		f.state.Values = valuesFromMovie(movie)
	}
	f.mu.Unlock()

	if f.onSaved != nil {
		f.onSaved(ctx)
	}
	return movie, nil
}

// FieldInputError reports a value the form cannot hold.
type FieldInputError struct {
	Field string
	Value string
}

func (e *FieldInputError) Error() string {
	return "invalid value " + strconv.Quote(e.Value) + " for field " + e.Field
}
