package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// instrumentedRepository 为任意仓储实现记录Prometheus指标
type instrumentedRepository struct {
	next book.Repository
}

// Instrument 包装仓储，记录每个操作的次数、结果与耗时
func Instrument(repo book.Repository) book.Repository {
	metrics.InitMetrics()
	return &instrumentedRepository{next: repo}
}

func (r *instrumentedRepository) List(ctx context.Context) ([]book.Book, error) {
	start := time.Now()
	books, err := r.next.List(ctx)
	record("list", start, err)
	return books, err
}

func (r *instrumentedRepository) FindByID(ctx context.Context, id uint) (book.Book, error) {
	start := time.Now()
	b, err := r.next.FindByID(ctx, id)
	record("get", start, err)
	return b, err
}

func (r *instrumentedRepository) Create(ctx context.Context, b book.Book) (book.Book, error) {
	start := time.Now()
	created, err := r.next.Create(ctx, b)
	record("create", start, err)
	return created, err
}

func (r *instrumentedRepository) Update(ctx context.Context, id uint, patch book.Patch) (book.Book, error) {
	start := time.Now()
	updated, err := r.next.Update(ctx, id, patch)
	record("update", start, err)
	return updated, err
}

func (r *instrumentedRepository) Delete(ctx context.Context, id uint) error {
	start := time.Now()
	err := r.next.Delete(ctx, id)
	record("delete", start, err)
	return err
}

func record(operation string, start time.Time, err error) {
	result := metrics.ResultSuccess
	switch {
	case errors.Is(err, book.ErrBookNotFound):
		result = metrics.ResultNotFound
	case err != nil:
		result = metrics.ResultError
	}
	metrics.ObserveStoreOperation(operation, result, time.Since(start))
}
