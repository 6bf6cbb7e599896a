package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"showscape/internal/data/repository"
	"showscape/pkg/database"
	"showscape/pkg/utils"
)

// MoviePgxRepositoryTestSuite runs the repository cases against Postgres.
// It needs a disposable database described by the usual DB_* variables
// and TEST_POSTGRES=1.
type MoviePgxRepositoryTestSuite struct {
	MovieGormRepositoryTestSuite

	db database.PgxIface
}

func (suite *MoviePgxRepositoryTestSuite) SetupSuite() {
	config, err := utils.LoadConfigFrom("")
	suite.Require().NoError(err)

	suite.db, err = database.InitDB(context.Background(), config.Database)
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(context.Background(), suite.db))
}

func (suite *MoviePgxRepositoryTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *MoviePgxRepositoryTestSuite) SetupTest() {
	suite.ctx = context.Background()

	_, err := suite.db.Exec(suite.ctx, `TRUNCATE movies RESTART IDENTITY`)
	suite.Require().NoError(err)

	suite.repo = repository.NewRepository(suite.db, zap.NewNop()).Movie
}

func TestMoviePgxRepositoryTestSuite(t *testing.T) {
	if os.Getenv("TEST_POSTGRES") != "1" {
		t.Skip("TEST_POSTGRES not set")
	}
	suite.Run(t, new(MoviePgxRepositoryTestSuite))
}
