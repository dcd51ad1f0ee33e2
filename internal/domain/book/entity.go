package book

// Book 图书实体
// 设计说明:
// 1. ID由存储层分配,创建后不可修改,是唯一的寻址键
// 2. 实体以值传递,调用方拿到的永远是副本,不会持有存储内部的引用
type Book struct {
	ID     uint
	Title  string // 书名
	Author string // 作者
	Year   int    // 出版年份
}

// NewBook 创建新图书(工厂方法)
// ID留空,由Repository.Create分配
func NewBook(title, author string, year int) Book {
	return Book{
		Title:  title,
		Author: author,
		Year:   year,
	}
}

// Patch 部分字段集合(用于合并式更新)
// nil表示该字段未提供,保持原值
type Patch struct {
	Title  *string
	Author *string
	Year   *int
}

// IsEmpty 是否没有任何字段
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Year == nil
}

// Apply 基于旧值构造新值,只覆盖Patch中出现的字段
// ID永远不会被修改
func (p Patch) Apply(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Year != nil {
		b.Year = *p.Year
	}
	return b
}
