package persistence

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// SeedBooks 示例图书
func SeedBooks() []book.Book {
	return []book.Book{
		book.NewBook("The Birthday Boy!", "Siradz Sahiddin", 1925),
		book.NewBook("1984", "George Orwell", 1949),
	}
}

// Seed 存储为空时按顺序写入books，返回写入数量
// 已有数据时不做任何修改，重复启动不会产生重复图书
func Seed(ctx context.Context, repo book.Repository, books []book.Book) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, b := range books {
		if _, err := repo.Create(ctx, b); err != nil {
			return i, err
		}
	}
	return len(books), nil
}
