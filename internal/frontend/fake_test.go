package frontend_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"showscape/internal/dto/request"
	"showscape/internal/frontend"
)

// fakeAPI is an in-memory MovieAPI that records calls. Fetches for a
// genre listed in blocked wait until that genre is released.
type fakeAPI struct {
	mu      sync.Mutex
	movies  []frontend.Movie
	nextID  int64
	calls   []string
	blocked map[string]chan struct{}

	listErr   error
	genresErr error
	deleteErr error
	createErr error
}

func newFakeAPI(movies ...frontend.Movie) *fakeAPI {
	f := &fakeAPI{blocked: map[string]chan struct{}{}}
	for _, m := range movies {
		f.nextID++
		m.ID = f.nextID
		f.movies = append(f.movies, m)
	}
	return f
}

func (f *fakeAPI) block(genre string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked[genre] = make(chan struct{})
}

func (f *fakeAPI) release(genre string) {
	f.mu.Lock()
	ch := f.blocked[genre]
	delete(f.blocked, genre)
	f.mu.Unlock()
	close(ch)
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) filter(keep func(frontend.Movie) bool) []frontend.Movie {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []frontend.Movie{}
	for _, m := range f.movies {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeAPI) ListMovies(ctx context.Context) ([]frontend.Movie, error) {
	f.record("list")
	f.mu.Lock()
	err := f.listErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.filter(func(frontend.Movie) bool { return true }), nil
}

func (f *fakeAPI) MoviesByGenre(ctx context.Context, genre string) ([]frontend.Movie, error) {
	f.record("genre:" + genre)
	f.mu.Lock()
	gate := f.blocked[genre]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.filter(func(m frontend.Movie) bool { return m.Genre == genre }), nil
}

func (f *fakeAPI) MoviesByYear(ctx context.Context, year int) ([]frontend.Movie, error) {
	f.record(fmt.Sprintf("year:%d", year))
	prefix := fmt.Sprintf("%04d-", year)
	return f.filter(func(m frontend.Movie) bool { return len(m.ReleaseDate) > 5 && m.ReleaseDate[:5] == prefix }), nil
}

func (f *fakeAPI) Genres(ctx context.Context) ([]string, error) {
	f.record("genres")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.genresErr != nil {
		return nil, f.genresErr
	}
	seen := map[string]bool{}
	out := []string{}
	for _, m := range f.movies {
		if !seen[m.Genre] {
			seen[m.Genre] = true
			out = append(out, m.Genre)
		}
	}
	return out, nil
}

func (f *fakeAPI) Years(ctx context.Context) ([]int, error) {
	f.record("years")
	return []int{}, nil
}

func (f *fakeAPI) GetMovie(ctx context.Context, id int64) (*frontend.Movie, error) {
	f.record(fmt.Sprintf("get:%d", id))
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.movies {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, &frontend.APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("movie not found with id: %d", id)}
}

func (f *fakeAPI) CreateMovie(ctx context.Context, req *request.MovieRequest) (*frontend.Movie, error) {
	f.record("create")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	m := frontend.Movie{
		ID:          f.nextID,
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Genre:       req.Genre,
		Rating:      *req.Rating,
	}
	f.movies = append(f.movies, m)
	return &m, nil
}

func (f *fakeAPI) UpdateMovie(ctx context.Context, id int64, req *request.MovieRequest) (*frontend.Movie, error) {
	f.record(fmt.Sprintf("update:%d", id))
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.movies {
		if f.movies[i].ID == id {
			f.movies[i].Title = req.Title
			f.movies[i].Description = req.Description
			f.movies[i].ReleaseDate = req.ReleaseDate
			f.movies[i].Genre = req.Genre
			f.movies[i].Rating = *req.Rating
			m := f.movies[i]
			return &m, nil
		}
	}
	return nil, &frontend.APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("movie not found with id: %d", id)}
}

func (f *fakeAPI) DeleteMovie(ctx context.Context, id int64) error {
	f.record(fmt.Sprintf("delete:%d", id))
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.movies {
		if f.movies[i].ID == id {
			f.movies = append(f.movies[:i], f.movies[i+1:]...)
			return nil
		}
	}
	return &frontend.APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("movie not found with id: %d", id)}
}
