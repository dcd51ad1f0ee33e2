package dto

import (
	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// CreateBookRequest HTTP创建请求(仅用于文档)
// 请求体按字段映射解析:title、author、year必填,其他字段忽略
type CreateBookRequest struct {
	Title  string `json:"title" example:"Dune"`
	Author string `json:"author" example:"Frank Herbert"`
	Year   int    `json:"year" example:"1965"`
}

// UpdateBookRequest HTTP更新请求(仅用于文档)
// 只允许title、author、year,出现其他字段时整个请求失败
type UpdateBookRequest struct {
	Title  *string `json:"title,omitempty" example:"Dune Messiah"`
	Author *string `json:"author,omitempty" example:"Frank Herbert"`
	Year   *int    `json:"year,omitempty" example:"1969"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID     uint   `json:"id" example:"2"`
	Title  string `json:"title" example:"Dune"`
	Author string `json:"author" example:"Frank Herbert"`
	Year   int    `json:"year" example:"1965"`
}

// NewBookResponse 领域实体 → 响应DTO
func NewBookResponse(b book.Book) BookResponse {
	return BookResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
	}
}

// NewBookListResponse 列表转换,空列表返回[]而不是null
func NewBookListResponse(books []book.Book) []BookResponse {
	list := make([]BookResponse, len(books))
	for i, b := range books {
		list[i] = NewBookResponse(b)
	}
	return list
}
