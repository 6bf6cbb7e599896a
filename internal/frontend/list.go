package frontend

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ListState is a snapshot of the movie list screen.
type ListState struct {
	Status Status
	Err    string
	Movies []Movie

	// GenreFilter wins over YearFilter when both are set. Zero year means
	// no year filter.
	GenreFilter string
	YearFilter  int

	Genres []string
	Years  []int
}

// ListController holds the movie list screen state. Every transition is
// published to the registered observers, possibly from a timer goroutine.
type ListController struct {
	api      MovieAPI
	log      *zap.Logger
	debounce *Debouncer

	mu        sync.Mutex
	state     ListState
	seq       uint64
	cancel    context.CancelFunc
	observers []func(ListState)
}

func NewListController(api MovieAPI, debounce time.Duration, log *zap.Logger) *ListController {
	return &ListController{
		api:      api,
		log:      log.With(zap.String("controller", "movie_list")),
		debounce: NewDebouncer(debounce),
		state: ListState{
			Status: StatusLoading,
			Movies: []Movie{},
			Genres: []string{},
			Years:  []int{},
		},
	}
}

// OnChange registers fn to receive every new state.
func (c *ListController) OnChange(fn func(ListState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State returns a copy of the current state.
func (c *ListController) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Load fetches the filter options and the active list.
func (c *ListController) Load(ctx context.Context) error {
	c.FetchFilterOptions(ctx)
	return c.Refresh(ctx)
}

// Refresh fetches the list for the active filter. A fetch superseded by a
// newer one is cancelled and its outcome dropped; it returns nil.
func (c *ListController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	genre, year := c.state.GenreFilter, c.state.YearFilter
	c.state.Status = StatusLoading
	c.state.Err = ""
	loading := c.snapshotLocked()
	c.mu.Unlock()
	defer cancel()

	c.publish(loading)

	movies, err := c.fetch(ctx, genre, year)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.log.Debug("Dropped superseded list response", zap.Uint64("seq", seq))
		return nil
	}
	c.cancel = nil
	if err != nil {
		c.state.Status = StatusError
		c.state.Err = err.Error()
	} else {
		c.state.Status = StatusReady
		c.state.Movies = movies
	}
	done := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("Failed to fetch movies", zap.Error(err))
	}
	c.publish(done)
	return err
}

func (c *ListController) fetch(ctx context.Context, genre string, year int) ([]Movie, error) {
	var (
		movies []Movie
		err    error
	)
	switch {
	case genre != "":
		movies, err = c.api.MoviesByGenre(ctx, genre)
	case year != 0:
		movies, err = c.api.MoviesByYear(ctx, year)
	default:
		movies, err = c.api.ListMovies(ctx)
	}
	if movies == nil {
		movies = []Movie{}
	}
	return movies, err
}

// FetchFilterOptions refreshes the available genres and years. Failures
// are logged and leave the previous options in place.
func (c *ListController) FetchFilterOptions(ctx context.Context) {
	genres, err := c.api.Genres(ctx)
	if err != nil {
		c.log.Warn("Failed to fetch genre options", zap.Error(err))
		return
	}
	years, err := c.api.Years(ctx)
	if err != nil {
		c.log.Warn("Failed to fetch year options", zap.Error(err))
		return
	}

	c.mu.Lock()
	c.state.Genres = genres
	c.state.Years = years
	state := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(state)
}

// SetGenreFilter selects a genre ("" for all) and schedules a debounced refresh.
func (c *ListController) SetGenreFilter(genre string) {
	c.setFilters(func(s *ListState) { s.GenreFilter = genre })
}

// SetYearFilter selects a release year (0 for all) and schedules a
// debounced refresh.
func (c *ListController) SetYearFilter(year int) {
	c.setFilters(func(s *ListState) { s.YearFilter = year })
}

// ClearFilters drops both filters and schedules a debounced refresh.
func (c *ListController) ClearFilters() {
	c.setFilters(func(s *ListState) {
		s.GenreFilter = ""
		s.YearFilter = 0
	})
}

func (c *ListController) setFilters(apply func(*ListState)) {
	c.mu.Lock()
	apply(&c.state)
	state := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(state)
	c.debounce.Trigger(func() {
		_ = c.Refresh(context.Background())
	})
}

// Delete removes a movie and reloads the list. A failure is kept as the
// screen error.
func (c *ListController) Delete(ctx context.Context, id int64) error {
	if err := c.api.DeleteMovie(ctx, id); err != nil {
		c.log.Warn("Failed to delete movie", zap.Int64("movie_id", id), zap.Error(err))

		c.mu.Lock()
		c.state.Status = StatusError
		c.state.Err = err.Error()
		state := c.snapshotLocked()
		c.mu.Unlock()

		c.publish(state)
		return err
	}
	return c.Load(ctx)
}

// Close stops the pending debounced refresh and cancels any fetch in flight.
func (c *ListController) Close() {
	c.debounce.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
}

func (c *ListController) snapshotLocked() ListState {
	s := c.state
	s.Movies = slices.Clone(c.state.Movies)
	s.Genres = slices.Clone(c.state.Genres)
	s.Years = slices.Clone(c.state.Years)
	return s
}

func (c *ListController) publish(state ListState) {
	c.mu.Lock()
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}
