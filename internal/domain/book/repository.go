package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(内存、MySQL/SQLite、Redis)
// 2. 每个方法都是一个原子单元,不会观察到其他操作的中间状态
// 3. 不做字段校验,调用方(应用层)负责在写入前校验
type Repository interface {
	// List 返回全部图书,按ID升序
	List(ctx context.Context) ([]Book, error)

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (Book, error)

	// Create 分配新ID并保存,返回带ID的图书
	// ID在进程生命周期内不会被复用
	Create(ctx context.Context, book Book) (Book, error)

	// Update 合并Patch中出现的字段,不存在返回ErrBookNotFound
	Update(ctx context.Context, id uint, patch Patch) (Book, error)

	// Delete 删除图书,不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error
}
