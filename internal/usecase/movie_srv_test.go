package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"showscape/internal/data/entity"
	"showscape/internal/data/repository"
	"showscape/internal/dto/request"
	"showscape/internal/dto/response"
	"showscape/internal/usecase"
	"showscape/pkg/database"
)

func movieRequest(title, genre, releaseDate string, rating float64) *request.MovieRequest {
	return &request.MovieRequest{
		Title:       title,
		Description: title + " plot",
		ReleaseDate: releaseDate,
		Genre:       genre,
		Rating:      &rating,
	}
}

type MovieServiceTestSuite struct {
	suite.Suite

	ctx     context.Context
	service usecase.MovieService
}

func (suite *MovieServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()

	db, err := database.InitSQLite(":memory:", zap.NewNop())
	suite.Require().NoError(err)
	repos, err := repository.NewGormRepository(db, zap.NewNop())
	suite.Require().NoError(err)

	suite.service = usecase.NewService(repos, zap.NewNop()).Movie
}

func (suite *MovieServiceTestSuite) TestCreateThenGetRoundTrips() {
	created, err := suite.service.CreateMovie(suite.ctx, movieRequest("Inception", "Sci-Fi", "2010-07-16", 8.8))
	suite.Require().NoError(err)
	suite.Positive(created.ID)

	got, err := suite.service.GetMovieByID(suite.ctx, created.ID)
	suite.Require().NoError(err)
	suite.Equal(*created, *got)
	suite.Equal("Inception", got.Title)
	suite.Equal("Inception plot", got.Description)
	suite.Equal("2010-07-16", got.ReleaseDate)
	suite.Equal("Sci-Fi", got.Genre)
	suite.InDelta(8.8, got.Rating, 1e-9)
}

func (suite *MovieServiceTestSuite) TestGetMovieByID_NotFound() {
	_, err := suite.service.GetMovieByID(suite.ctx, 42)

	suite.ErrorIs(err, usecase.ErrMovieNotFound)
	suite.Equal("movie not found with id: 42", err.Error())
}

func (suite *MovieServiceTestSuite) TestCreateMovie_ValidationPersistsNothing() {
	tests := []struct {
		name  string
		req   *request.MovieRequest
		field string
	}{
		{"rating above range", movieRequest("Heat", "Crime", "1995-12-15", 15), "rating"},
		{"rating below range", movieRequest("Heat", "Crime", "1995-12-15", -1), "rating"},
		{"blank title", movieRequest(" ", "Crime", "1995-12-15", 8), "title"},
		{"empty genre", movieRequest("Heat", "", "1995-12-15", 8), "genre"},
		{"missing date", movieRequest("Heat", "Crime", "", 8), "releaseDate"},
		{"unparseable date", movieRequest("Heat", "Crime", "15/12/1995", 8), "releaseDate"},
		{"missing rating", &request.MovieRequest{Title: "Heat", Genre: "Crime", ReleaseDate: "1995-12-15"}, "rating"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateMovie(suite.ctx, tt.req)

			var validationErr *usecase.ValidationError
			suite.Require().ErrorAs(err, &validationErr)
			suite.Require().Len(validationErr.Fields, 1)
			suite.Equal(tt.field, validationErr.Fields[0].Field)
		})
	}

	movies, err := suite.service.GetMovies(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(movies)
}

func (suite *MovieServiceTestSuite) TestUpdateMovie() {
	created, err := suite.service.CreateMovie(suite.ctx, movieRequest("Alien", "Horror", "1979-05-25", 8.0))
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateMovie(suite.ctx, created.ID, movieRequest("Aliens", "Action", "1986-07-18", 8.4))
	suite.Require().NoError(err)
	suite.Equal(created.ID, updated.ID)
	suite.Equal("Aliens", updated.Title)
	suite.Equal("1986-07-18", updated.ReleaseDate)

	got, err := suite.service.GetMovieByID(suite.ctx, created.ID)
	suite.Require().NoError(err)
	suite.Equal(*updated, *got)
}

func (suite *MovieServiceTestSuite) TestUpdateMovie_MissingLeavesStoreUnchanged() {
	created, err := suite.service.CreateMovie(suite.ctx, movieRequest("Alien", "Horror", "1979-05-25", 8.0))
	suite.Require().NoError(err)

	_, err = suite.service.UpdateMovie(suite.ctx, 9999, movieRequest("Ghost", "Drama", "1990-07-13", 6.5))
	suite.ErrorIs(err, usecase.ErrMovieNotFound)

	movies, err := suite.service.GetMovies(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(movies, 1)
	suite.Equal(*created, movies[0])
}

func (suite *MovieServiceTestSuite) TestUpdateMovie_InvalidDoesNotOverwrite() {
	created, err := suite.service.CreateMovie(suite.ctx, movieRequest("Alien", "Horror", "1979-05-25", 8.0))
	suite.Require().NoError(err)

	_, err = suite.service.UpdateMovie(suite.ctx, created.ID, movieRequest("", "Horror", "1979-05-25", 8.0))
	var validationErr *usecase.ValidationError
	suite.ErrorAs(err, &validationErr)

	got, err := suite.service.GetMovieByID(suite.ctx, created.ID)
	suite.Require().NoError(err)
	suite.Equal("Alien", got.Title)
}

func (suite *MovieServiceTestSuite) TestDeleteMovie() {
	created, err := suite.service.CreateMovie(suite.ctx, movieRequest("Heat", "Crime", "1995-12-15", 8.3))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteMovie(suite.ctx, created.ID))

	_, err = suite.service.GetMovieByID(suite.ctx, created.ID)
	suite.ErrorIs(err, usecase.ErrMovieNotFound)

	err = suite.service.DeleteMovie(suite.ctx, created.ID)
	suite.ErrorIs(err, usecase.ErrMovieNotFound)
}

func (suite *MovieServiceTestSuite) TestFiltersAreSubsetsOfListAll() {
	seed := []*request.MovieRequest{
		movieRequest("Inception", "Sci-Fi", "2010-07-16", 8.8),
		movieRequest("The Social Network", "Drama", "2010-10-01", 7.8),
		movieRequest("Interstellar", "Sci-Fi", "2014-11-07", 8.7),
		movieRequest("Whiplash", "Drama", "2014-10-10", 8.5),
	}
	for _, req := range seed {
		_, err := suite.service.CreateMovie(suite.ctx, req)
		suite.Require().NoError(err)
	}

	all, err := suite.service.GetMovies(suite.ctx)
	suite.Require().NoError(err)

	byGenre, err := suite.service.GetMoviesByGenre(suite.ctx, "Sci-Fi")
	suite.Require().NoError(err)
	var wantGenre []string
	for _, m := range all {
		if m.Genre == "Sci-Fi" {
			wantGenre = append(wantGenre, m.Title)
		}
	}
	suite.Equal(wantGenre, titles(byGenre))

	byYear, err := suite.service.GetMoviesByYear(suite.ctx, 2014)
	suite.Require().NoError(err)
	suite.Equal([]string{"Interstellar", "Whiplash"}, titles(byYear))

	genres, err := suite.service.GetGenres(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal([]string{"Drama", "Sci-Fi"}, genres)

	years, err := suite.service.GetYears(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal([]int{2010, 2014}, years)
}

func (suite *MovieServiceTestSuite) TestEmptyStoreReturnsEmptyLists() {
	movies, err := suite.service.GetMovies(suite.ctx)
	suite.Require().NoError(err)
	suite.NotNil(movies)
	suite.Empty(movies)

	genres, err := suite.service.GetGenres(suite.ctx)
	suite.Require().NoError(err)
	suite.NotNil(genres)

	years, err := suite.service.GetYears(suite.ctx)
	suite.Require().NoError(err)
	suite.NotNil(years)
}

func TestMovieServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MovieServiceTestSuite))
}

// mockMovieRepository simulates store failures.
type mockMovieRepository struct {
	mock.Mock
}

func (m *mockMovieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*entity.Movie)
	return movie, args.Error(1)
}

func (m *mockMovieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMovieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	args := m.Called(ctx)
	movies, _ := args.Get(0).([]*entity.Movie)
	return movies, args.Error(1)
}

func (m *mockMovieRepository) FindByGenre(ctx context.Context, genre string) ([]*entity.Movie, error) {
	args := m.Called(ctx, genre)
	movies, _ := args.Get(0).([]*entity.Movie)
	return movies, args.Error(1)
}

func (m *mockMovieRepository) FindByReleaseYear(ctx context.Context, year int) ([]*entity.Movie, error) {
	args := m.Called(ctx, year)
	movies, _ := args.Get(0).([]*entity.Movie)
	return movies, args.Error(1)
}

func (m *mockMovieRepository) FindDistinctGenres(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	genres, _ := args.Get(0).([]string)
	return genres, args.Error(1)
}

func (m *mockMovieRepository) FindDistinctReleaseYears(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	years, _ := args.Get(0).([]int)
	return years, args.Error(1)
}

func newMockedService(t *testing.T) (usecase.MovieService, *mockMovieRepository) {
	repo := new(mockMovieRepository)
	t.Cleanup(func() { repo.AssertExpectations(t) })
	return usecase.NewMovieService(&repository.Repository{Movie: repo}, zap.NewNop()), repo
}

func TestMovieService_StoreFailuresAreUnhandled(t *testing.T) {
	ctx := context.Background()
	dbDown := errors.New("connection refused")

	service, repo := newMockedService(t)
	repo.On("FindAll", ctx).Return(nil, dbDown)
	repo.On("FindByID", ctx, int64(1)).Return(nil, dbDown)
	repo.On("Create", ctx, mock.AnythingOfType("*entity.Movie")).Return(dbDown)
	repo.On("Delete", ctx, int64(1)).Return(dbDown)
	repo.On("FindDistinctGenres", ctx).Return(nil, dbDown)

	_, err := service.GetMovies(ctx)
	assert.ErrorIs(t, err, dbDown)

	_, err = service.GetMovieByID(ctx, 1)
	assert.ErrorIs(t, err, dbDown)
	assert.NotErrorIs(t, err, usecase.ErrMovieNotFound)

	_, err = service.CreateMovie(ctx, movieRequest("Heat", "Crime", "1995-12-15", 8.3))
	assert.ErrorIs(t, err, dbDown)

	err = service.DeleteMovie(ctx, 1)
	assert.ErrorIs(t, err, dbDown)
	assert.NotErrorIs(t, err, usecase.ErrMovieNotFound)

	_, err = service.GetGenres(ctx)
	assert.ErrorIs(t, err, dbDown)
}

func TestMovieService_UpdateRaceWithDelete(t *testing.T) {
	ctx := context.Background()
	service, repo := newMockedService(t)

	existing := &entity.Movie{Base: entity.Base{ID: 7}, Title: "Heat", Genre: "Crime"}
	repo.On("FindByID", ctx, int64(7)).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(repository.ErrNotFound)

	_, err := service.UpdateMovie(ctx, 7, movieRequest("Heat", "Crime", "1995-12-15", 8.3))
	require.ErrorIs(t, err, usecase.ErrMovieNotFound)
}

func TestMovieService_NilStoreListsBecomeEmpty(t *testing.T) {
	ctx := context.Background()
	service, repo := newMockedService(t)

	repo.On("FindByGenre", ctx, "Western").Return(nil, nil)
	repo.On("FindDistinctReleaseYears", ctx).Return(nil, nil)

	movies, err := service.GetMoviesByGenre(ctx, "Western")
	require.NoError(t, err)
	assert.NotNil(t, movies)

	years, err := service.GetYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{}, years)
}

func titles(movies []response.MovieResponse) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}
