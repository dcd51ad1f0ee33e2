package mysql

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

// newTestRepository 使用临时SQLite文件代替MySQL
func newTestRepository(t *testing.T) book.Repository {
	t.Helper()
	repo, _ := newTestRepositoryWithDB(t)
	return repo
}

func newTestRepositoryWithDB(t *testing.T) (book.Repository, *sql.DB) {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Storage:  config.StorageConfig{Driver: config.DriverSQLite},
		Database: config.DatabaseConfig{SQLitePath: filepath.Join(t.TempDir(), "books.db")},
	}

	db, err := NewDB(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewBookRepository(db), sqlDB
}

func TestBookRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	orwell, err := repo.Create(ctx, book.NewBook("1984", "George Orwell", 1949))
	require.NoError(t, err)
	dune, err := repo.Create(ctx, book.NewBook("Dune", "Frank Herbert", 1965))
	require.NoError(t, err)
	assert.Greater(t, dune.ID, orwell.ID)

	t.Run("查询", func(t *testing.T) {
		got, err := repo.FindByID(ctx, dune.ID)
		require.NoError(t, err)
		assert.Equal(t, dune, got)
	})

	t.Run("部分更新", func(t *testing.T) {
		updated, err := repo.Update(ctx, dune.ID, book.Patch{Year: ptr(1966)})
		require.NoError(t, err)
		assert.Equal(t, book.Book{ID: dune.ID, Title: "Dune", Author: "Frank Herbert", Year: 1966}, updated)

		got, err := repo.FindByID(ctx, dune.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("空Patch不改变图书", func(t *testing.T) {
		before, err := repo.FindByID(ctx, orwell.ID)
		require.NoError(t, err)

		after, err := repo.Update(ctx, orwell.ID, book.Patch{})
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, orwell.ID))

		_, err := repo.FindByID(ctx, orwell.ID)
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		books, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, dune.ID, books[0].ID)
	})
}

func TestBookRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	_, err = repo.Update(ctx, 99, book.Patch{Title: ptr("X")})
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 99), book.ErrBookNotFound)
}

func TestBookRepository_ListEmpty(t *testing.T) {
	books, err := newTestRepository(t).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.NotNil(t, books)
}

// 删除当前最大ID后再创建，自增ID不回退
func TestBookRepository_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.Create(ctx, book.NewBook("1984", "George Orwell", 1949))
	require.NoError(t, err)
	last, err := repo.Create(ctx, book.NewBook("Dune", "Frank Herbert", 1965))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, last.ID))

	next, err := repo.Create(ctx, book.NewBook("Emma", "Jane Austen", 1815))
	require.NoError(t, err)
	assert.Greater(t, next.ID, last.ID)
}

func TestBookRepository_DatabaseError(t *testing.T) {
	ctx := context.Background()
	repo, sqlDB := newTestRepositoryWithDB(t)
	require.NoError(t, sqlDB.Close())

	_, err := repo.List(ctx)
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
	assert.True(t, appErr.IsInternal())

	_, err = repo.Create(ctx, book.NewBook("Dune", "Frank Herbert", 1965))
	assert.Equal(t, apperrors.ErrCodeDatabaseError, apperrors.GetAppError(err).Code)
}
