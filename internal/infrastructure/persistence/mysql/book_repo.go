package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 每个操作对应一个事务,不存在跨操作事务
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// List 查询全部图书,按ID升序
func (r *bookRepository) List(ctx context.Context) ([]book.Book, error) {
	var models []BookModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, dbError(err, "查询图书列表失败")
	}

	books := make([]book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return book.Book{}, book.ErrBookNotFound
		}
		return book.Book{}, dbError(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Create 创建图书,ID由数据库自增生成
func (r *bookRepository) Create(ctx context.Context, b book.Book) (book.Book, error) {
	model := &BookModel{
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return book.Book{}, dbError(err, "创建图书失败")
	}

	return toBookEntity(model), nil
}

// Update 在一个事务内读取、合并、写回
func (r *bookRepository) Update(ctx context.Context, id uint, patch book.Patch) (book.Book, error) {
	var updated book.Book

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model BookModel
		query := tx
		// SELECT FOR UPDATE锁定行,SQLite不支持行锁
		if tx.Dialector.Name() == "mysql" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return dbError(err, "锁定图书失败")
		}

		updated = patch.Apply(toBookEntity(&model))
		if patch.IsEmpty() {
			return nil
		}

		next := toBookModel(updated)
		if err := tx.Save(&next).Error; err != nil {
			return dbError(err, "更新图书失败")
		}
		return nil
	})
	if err != nil {
		return book.Book{}, err
	}

	return updated, nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return dbError(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) book.Book {
	return book.Book{
		ID:     model.ID,
		Title:  model.Title,
		Author: model.Author,
		Year:   model.Year,
	}
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b book.Book) BookModel {
	return BookModel{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
	}
}

// dbError 数据库错误统一使用ErrCodeDatabaseError
func dbError(err error, message string) error {
	return apperrors.WrapWithCode(apperrors.ErrCodeDatabaseError, err, message)
}
