// Package testutil holds helpers shared by the storefront test suites:
// sqlmock-backed GORM handles, event recorders and JSON request helpers.
package testutil

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDB is a postgres-dialect GORM handle over sqlmock. Expectations are
// set on the embedded Sqlmock and checked when the test ends.
type MockDB struct {
	DB *gorm.DB
	sqlmock.Sqlmock
}

func NewMockDB(t testing.TB) *MockDB {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "unmet sqlmock expectations")
		_ = conn.Close()
	})
	return &MockDB{DB: db, Sqlmock: mock}
}
