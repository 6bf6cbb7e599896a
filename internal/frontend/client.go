package frontend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"showscape/internal/dto/request"
	"showscape/internal/dto/response"
	"showscape/pkg/utils"

	"go.uber.org/zap"
)

// Movie is the resource shape served by the API.
type Movie = response.MovieResponse

// MovieAPI is the backend surface the controllers drive.
type MovieAPI interface {
	ListMovies(ctx context.Context) ([]Movie, error)
	MoviesByGenre(ctx context.Context, genre string) ([]Movie, error)
	MoviesByYear(ctx context.Context, year int) ([]Movie, error)
	Genres(ctx context.Context) ([]string, error)
	Years(ctx context.Context) ([]int, error)
	GetMovie(ctx context.Context, id int64) (*Movie, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*Movie, error)
	UpdateMovie(ctx context.Context, id int64, req *request.MovieRequest) (*Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
}

// APIError is a non-2xx answer from the API. Its Error text is what the
// UI shows to the user.
type APIError struct {
	Status  int
	Message string
	Details []utils.FieldError
}

func (e *APIError) Error() string {
	switch {
	case e.Status == http.StatusBadRequest && len(e.Details) > 0:
		return "Validation failed: " + utils.FormatValidationErrors(e.Details)
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
}

// Client talks JSON to the movie API rooted at baseURL (".../api").
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log.With(zap.String("component", "api_client")),
	}
}

func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	movies := []Movie{}
	err := c.do(ctx, http.MethodGet, "/movies", nil, &movies)
	return movies, err
}

func (c *Client) MoviesByGenre(ctx context.Context, genre string) ([]Movie, error) {
	movies := []Movie{}
	err := c.do(ctx, http.MethodGet, "/movies/genre/"+url.PathEscape(genre), nil, &movies)
	return movies, err
}

func (c *Client) MoviesByYear(ctx context.Context, year int) ([]Movie, error) {
	movies := []Movie{}
	err := c.do(ctx, http.MethodGet, "/movies/year/"+strconv.Itoa(year), nil, &movies)
	return movies, err
}

func (c *Client) Genres(ctx context.Context) ([]string, error) {
	genres := []string{}
	err := c.do(ctx, http.MethodGet, "/movies/genres", nil, &genres)
	return genres, err
}

func (c *Client) Years(ctx context.Context) ([]int, error) {
	years := []int{}
	err := c.do(ctx, http.MethodGet, "/movies/years", nil, &years)
	return years, err
}

func (c *Client) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	var movie Movie
	if err := c.do(ctx, http.MethodGet, moviePath(id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) CreateMovie(ctx context.Context, req *request.MovieRequest) (*Movie, error) {
	var movie Movie
	if err := c.do(ctx, http.MethodPost, "/movies", req, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) UpdateMovie(ctx context.Context, id int64, req *request.MovieRequest) (*Movie, error) {
	var movie Movie
	if err := c.do(ctx, http.MethodPut, moviePath(id), req, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) DeleteMovie(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, moviePath(id), nil, nil)
}

func moviePath(id int64) string {
	return "/movies/" + strconv.FormatInt(id, 10)
}

// do sends body as JSON and decodes a successful answer into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body utils.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return apiErr
	}
	apiErr.Message = body.Message
	apiErr.Details = body.Details
	return apiErr
}
