package book

import (
	"context"
	"fmt"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// Service 图书用例编排(校验 + 调用仓储)
// 设计说明:
// 1. 每次调用都是无状态的:(当前存储状态, 请求) → (新存储状态, 结果)
// 2. 校验全部在写入之前完成,失败时不会部分写入
// 3. 创建对未知字段宽松(忽略),更新对未知字段严格(整个请求失败)
type Service struct {
	repo book.Repository
}

// NewService 创建图书用例服务
func NewService(repo book.Repository) *Service {
	return &Service{repo: repo}
}

// ListResult 列表结果
type ListResult struct {
	Books []book.Book
	Total int
}

// DeleteResult 删除结果
type DeleteResult struct {
	ID      uint
	Message string
}

// List 查询全部图书
func (s *Service) List(ctx context.Context) (*ListResult, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []book.Book{}
	}
	return &ListResult{Books: books, Total: len(books)}, nil
}

// Get 查询单本图书
func (s *Service) Get(ctx context.Context, id uint) (*book.Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create 创建图书
// 校验顺序:
// 1. 请求体必须是字段映射
// 2. 按title、author、year顺序检查必填字段,报告第一个缺失的字段
// 3. 字段类型
// 白名单之外的字段被忽略
func (s *Service) Create(ctx context.Context, payload *Payload) (*book.Book, error) {
	if err := payload.Err(); err != nil {
		return nil, err
	}

	for _, name := range requiredFields {
		if !payload.Has(name) {
			return nil, apperrors.MissingField(name)
		}
	}

	patch, err := payload.Patch()
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, book.NewBook(*patch.Title, *patch.Author, *patch.Year))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update 更新图书
// 校验顺序:
// 1. 图书必须存在(先于任何请求体校验)
// 2. 请求体必须是字段映射
// 3. 按请求体中键的顺序检查白名单,报告第一个非法字段
// 4. 字段类型
// 任何一步失败都不会修改存储
func (s *Service) Update(ctx context.Context, id uint, payload *Payload) (*book.Book, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if err := payload.Err(); err != nil {
		return nil, err
	}

	for _, key := range payload.Keys() {
		if !allowedFields[key] {
			return nil, apperrors.InvalidField(key)
		}
	}

	patch, err := payload.Patch()
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 删除图书
func (s *Service) Delete(ctx context.Context, id uint) (*DeleteResult, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &DeleteResult{
		ID:      id,
		Message: fmt.Sprintf("Book with id %d deleted", id),
	}, nil
}
