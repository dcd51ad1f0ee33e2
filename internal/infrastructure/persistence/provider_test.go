package persistence

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

func TestNewBookRepository_Drivers(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{
			name: "memory",
			cfg:  &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory, Seed: true}},
		},
		{
			name: "sqlite",
			cfg: &config.Config{
				Server:   config.ServerConfig{Mode: "test"},
				Storage:  config.StorageConfig{Driver: config.DriverSQLite, Seed: true},
				Database: config.DatabaseConfig{SQLitePath: filepath.Join(t.TempDir(), "books.db")},
			},
		},
		{
			name: "redis",
			cfg: &config.Config{
				Storage: config.StorageConfig{Driver: config.DriverRedis, Seed: true},
				Redis:   config.RedisConfig{Host: mr.Host(), Port: port, KeyPrefix: "seed:"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cleanup, err := NewBookRepository(tt.cfg, zap.NewNop())
			require.NoError(t, err)
			defer cleanup()

			books, err := repo.List(context.Background())
			require.NoError(t, err)
			require.Len(t, books, 2)
			assert.Equal(t, uint(1), books[0].ID)
			assert.Equal(t, "The Birthday Boy!", books[0].Title)
			assert.Equal(t, uint(2), books[1].ID)
			assert.Equal(t, "1984", books[1].Title)
		})
	}
}

func TestNewBookRepository_UnknownDriver(t *testing.T) {
	_, _, err := NewBookRepository(&config.Config{Storage: config.StorageConfig{Driver: "mongo"}}, zap.NewNop())
	assert.Error(t, err)
}

func TestSeed_SkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}}
	repo, cleanup, err := NewBookRepository(cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	_, err = repo.Create(ctx, book.NewBook("Dune", "Frank Herbert", 1965))
	require.NoError(t, err)

	n, err := Seed(ctx, repo, SeedBooks())
	require.NoError(t, err)
	assert.Zero(t, n)

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestInstrument_PassesThroughErrors(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}}
	repo, cleanup, err := NewBookRepository(cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	_, err = repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}
