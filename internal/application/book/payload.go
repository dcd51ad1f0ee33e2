package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"strings"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 字段名
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
	FieldYear   = "year"
)

// requiredFields 创建时必填字段，按此顺序检查
var requiredFields = []string{FieldTitle, FieldAuthor, FieldYear}

// allowedFields 更新时允许出现的字段
var allowedFields = map[string]bool{
	FieldTitle:  true,
	FieldAuthor: true,
	FieldYear:   true,
}

// Payload 请求体字段映射
// 设计说明:
// 1. 保留JSON对象中键的出现顺序,白名单校验按该顺序报告第一个非法字段
// 2. 值保持原始JSON,到Patch()时才做类型解析
// 3. 请求体不是字段映射时err非nil,由应用层决定何时报告
type Payload struct {
	keys   []string
	values map[string]json.RawMessage
	err    error
}

// ParsePayload 从Content-Type与请求体构造Payload
// 只有Content-Type为application/json(或+json)且请求体是JSON对象时才是合法字段映射
func ParsePayload(contentType string, body []byte) *Payload {
	if !isJSONContentType(contentType) {
		return &Payload{err: apperrors.ErrWrongContentType}
	}

	keys, values, err := decodeObject(body)
	if err != nil {
		return &Payload{err: err}
	}
	return &Payload{keys: keys, values: values}
}

// Err 请求体不是合法字段映射时返回错误
func (p *Payload) Err() error {
	if p == nil {
		return apperrors.ErrWrongContentType
	}
	return p.err
}

// Keys 按出现顺序返回全部键(重复键只保留第一次出现的位置)
func (p *Payload) Keys() []string {
	return p.keys
}

// Has 是否包含字段
func (p *Payload) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Patch 解析已识别字段的类型
// title/author必须是非空字符串,year必须是整数;白名单之外的键跳过,由调用方决定是否拒绝
func (p *Payload) Patch() (book.Patch, error) {
	var f book.Patch
	for _, key := range p.keys {
		raw := p.values[key]
		switch key {
		case FieldTitle:
			s, err := decodeString(raw)
			if err != nil {
				return book.Patch{}, apperrors.InvalidValue(key)
			}
			f.Title = &s
		case FieldAuthor:
			s, err := decodeString(raw)
			if err != nil {
				return book.Patch{}, apperrors.InvalidValue(key)
			}
			f.Author = &s
		case FieldYear:
			n, err := decodeInt(raw)
			if err != nil {
				return book.Patch{}, apperrors.InvalidValue(key)
			}
			f.Year = &n
		}
	}
	return f, nil
}

// =========================================
// 辅助函数:JSON解析
// =========================================

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// decodeObject 按顺序读取JSON对象的键值
func decodeObject(body []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, apperrors.ErrBindError
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		// 合法JSON但不是对象(数组、字符串、数字...)
		if err := drain(dec); err != nil {
			return nil, nil, apperrors.ErrBindError
		}
		return nil, nil, apperrors.ErrWrongContentType
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, apperrors.ErrBindError
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, apperrors.ErrBindError
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, apperrors.ErrBindError
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = raw
	}

	// 结束的'}'
	if _, err := dec.Token(); err != nil {
		return nil, nil, apperrors.ErrBindError
	}
	// 对象之后不允许有其他内容
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, apperrors.ErrBindError
	}

	return keys, values, nil
}

// drain 读完剩余内容,确认请求体是完整合法的JSON
func drain(dec *json.Decoder) error {
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("empty string")
	}
	return s, nil
}

func decodeInt(raw json.RawMessage) (int, error) {
	if bytes.Equal(raw, []byte("null")) {
		return 0, errors.New("null")
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n, nil
}
