package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// bookRepository 图书仓储实现(进程内存)
// 设计说明:
// 1. 一把互斥锁保护所有操作(读写一视同仁),每个操作持锁到结束
// 2. books按插入顺序保存,ID单调递增,因此List天然按ID升序
// 3. nextID只增不减,删除后ID不会被复用
type bookRepository struct {
	mu     sync.Mutex
	books  []book.Book
	nextID uint
}

// NewBookRepository 创建内存图书仓储
func NewBookRepository() book.Repository {
	return &bookRepository{nextID: 1}
}

// List 返回全部图书的副本
func (r *bookRepository) List(_ context.Context) ([]book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := make([]book.Book, len(r.books))
	copy(books, r.books)
	return books, nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(_ context.Context, id uint) (book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return book.Book{}, book.ErrBookNotFound
	}
	return r.books[i], nil
}

// Create 分配ID并追加到集合末尾
func (r *bookRepository) Create(_ context.Context, b book.Book) (book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++

	r.books = append(r.books, b)
	return b, nil
}

// Update 构造新值后整体替换旧条目
func (r *bookRepository) Update(_ context.Context, id uint, patch book.Patch) (book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return book.Book{}, book.ErrBookNotFound
	}

	updated := patch.Apply(r.books[i])
	r.books[i] = updated
	return updated, nil
}

// Delete 删除图书,保持剩余元素顺序
func (r *bookRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return book.ErrBookNotFound
	}

	r.books = append(r.books[:i], r.books[i+1:]...)
	return nil
}

// indexOf 调用方必须持有锁
func (r *bookRepository) indexOf(id uint) int {
	for i := range r.books {
		if r.books[i].ID == id {
			return i
		}
	}
	return -1
}
