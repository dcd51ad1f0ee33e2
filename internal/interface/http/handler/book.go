package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// BookHandler 图书HTTP处理器
// 只负责协议转换:解析路径参数与请求体,调用应用层,编码响应
type BookHandler struct {
	bookService *appbook.Service
}

// NewBookHandler 创建图书处理器
func NewBookHandler(bookService *appbook.Service) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  返回全部图书及总数
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BookResponse,total=int}
// @Failure      500 {object} response.Response "内部错误"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	result, err := h.bookService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithTotal(c, dto.NewBookListResponse(result.Books), result.Total)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	b, err := h.bookService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(*b))
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  title、author、year必填,按此顺序报告第一个缺失字段;其他字段忽略
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	payload, ok := readPayload(c)
	if !ok {
		return
	}

	b, err := h.bookService.Create(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewBookResponse(*b))
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  只合并请求中出现的字段;出现title、author、year以外的字段时整个请求失败
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.UpdateBookRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	payload, ok := readPayload(c)
	if !ok {
		return
	}

	b, err := h.bookService.Update(c.Request.Context(), id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(*b))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "Book with id {id} deleted"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	result, err := h.bookService.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, result.Message)
}

// bookID 解析路径中的图书ID
// 非整数ID与不存在的路由同样返回404
func bookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperrors.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}

// readPayload 读取请求体
// 请求体是否为合法字段映射由应用层判断,这里只处理读取失败
func readPayload(c *gin.Context) (*appbook.Payload, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperrors.Wrap(err, "读取请求体失败"))
		return nil, false
	}
	return appbook.ParsePayload(c.GetHeader("Content-Type"), body), true
}
