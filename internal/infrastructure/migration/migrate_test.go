package migration

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/storefront/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_ReadsEmbeddedSource(t *testing.T) {
	var seen []uint
	_, err := open(FromFS(migrations.FS), zap.NewNop(), func(files source.Driver) (*migrate.Migrate, error) {
		for v, err := files.First(); err == nil; v, err = files.Next(v) {
			seen = append(seen, v)
		}
		return nil, errors.New("no database in unit tests")
	})

	require.ErrorContains(t, err, "create migrator")
	require.NotEmpty(t, seen)
	assert.Equal(t, uint(1), seen[0])
}

func TestOpen_RejectsUnreadableSource(t *testing.T) {
	_, err := open(Source{fsys: deniedFS{}, name: "broken"}, zap.NewNop(), func(source.Driver) (*migrate.Migrate, error) {
		t.Fatal("connect must not run without a source")
		return nil, nil
	})
	assert.ErrorContains(t, err, "broken")
}

type deniedFS struct{}

func (deniedFS) Open(string) (fs.File, error) { return nil, fs.ErrPermission }
