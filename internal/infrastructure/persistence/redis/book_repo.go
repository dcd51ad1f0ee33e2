package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// maxTxRetries WATCH冲突时的最大重试次数
const maxTxRetries = 10

// bookRepository 图书仓储实现(Redis)
//
// Key设计(prefix默认为"bookshelf:"):
//   - {prefix}books:seq   INCR生成ID,只增不减
//   - {prefix}books:ids   有序集合,score=ID,保证List按ID升序
//   - {prefix}book:{id}   Hash,字段title/author/year
//
// 写操作使用MULTI/EXEC,Update使用WATCH做乐观锁
type bookRepository struct {
	client *redis.Client
	prefix string
}

// NewBookRepository 创建Redis图书仓储
func NewBookRepository(client *redis.Client, prefix string) book.Repository {
	return &bookRepository{client: client, prefix: prefix}
}

// List 查询全部图书
// WATCH ids集合,在事务内批量HGETALL,集合在期间变化则重试
func (r *bookRepository) List(ctx context.Context) ([]book.Book, error) {
	var books []book.Book

	txf := func(tx *redis.Tx) error {
		ids, err := tx.ZRange(ctx, r.idsKey(), 0, -1).Result()
		if err != nil {
			return err
		}

		cmds := make([]*redis.MapStringStringCmd, len(ids))
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, id := range ids {
				cmds[i] = pipe.HGetAll(ctx, r.prefix+"book:"+id)
			}
			return nil
		})
		if err != nil {
			return err
		}

		books = make([]book.Book, 0, len(ids))
		for i, cmd := range cmds {
			fields := cmd.Val()
			if len(fields) == 0 {
				continue
			}
			b, err := toBookEntity(ids[i], fields)
			if err != nil {
				return err
			}
			books = append(books, b)
		}
		return nil
	}

	if err := r.watch(ctx, txf, r.idsKey()); err != nil {
		return nil, redisError(err, "查询图书列表失败")
	}
	return books, nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (book.Book, error) {
	fields, err := r.client.HGetAll(ctx, r.bookKey(id)).Result()
	if err != nil {
		return book.Book{}, redisError(err, "查询图书失败")
	}
	if len(fields) == 0 {
		return book.Book{}, book.ErrBookNotFound
	}

	b, err := toBookEntity(strconv.FormatUint(uint64(id), 10), fields)
	if err != nil {
		return book.Book{}, redisError(err, "解析图书失败")
	}
	return b, nil
}

// Create INCR分配ID后在事务内写入Hash与ID集合
func (r *bookRepository) Create(ctx context.Context, b book.Book) (book.Book, error) {
	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return book.Book{}, redisError(err, "分配图书ID失败")
	}
	b.ID = uint(id)

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.bookKey(b.ID), toHash(b))
		pipe.ZAdd(ctx, r.idsKey(), redis.Z{Score: float64(b.ID), Member: b.ID})
		return nil
	})
	if err != nil {
		return book.Book{}, redisError(err, "创建图书失败")
	}

	return b, nil
}

// Update WATCH图书Key,读取、合并后在事务内写回
func (r *bookRepository) Update(ctx context.Context, id uint, patch book.Patch) (book.Book, error) {
	key := r.bookKey(id)
	var updated book.Book

	txf := func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return book.ErrBookNotFound
		}

		current, err := toBookEntity(strconv.FormatUint(uint64(id), 10), fields)
		if err != nil {
			return err
		}
		updated = patch.Apply(current)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, toHash(updated))
			return nil
		})
		return err
	}

	if err := r.watch(ctx, txf, key); err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return book.Book{}, err
		}
		return book.Book{}, redisError(err, "更新图书失败")
	}
	return updated, nil
}

// Delete 在事务内删除Hash并移出ID集合
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.bookKey(id))
		pipe.ZRem(ctx, r.idsKey(), id)
		return nil
	})
	if err != nil {
		return redisError(err, "删除图书失败")
	}

	if del.Val() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// watch 乐观锁事务,冲突时重试
func (r *bookRepository) watch(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("事务冲突重试%d次仍失败", maxTxRetries)
}

func (r *bookRepository) seqKey() string { return r.prefix + "books:seq" }
func (r *bookRepository) idsKey() string { return r.prefix + "books:ids" }

func (r *bookRepository) bookKey(id uint) string {
	return fmt.Sprintf("%sbook:%d", r.prefix, id)
}

// =========================================
// 辅助函数:Hash转换
// =========================================

func toHash(b book.Book) map[string]interface{} {
	return map[string]interface{}{
		"title":  b.Title,
		"author": b.Author,
		"year":   b.Year,
	}
}

func toBookEntity(id string, fields map[string]string) (book.Book, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return book.Book{}, fmt.Errorf("非法的图书ID %q: %w", id, err)
	}
	year, err := strconv.Atoi(fields["year"])
	if err != nil {
		return book.Book{}, fmt.Errorf("图书%s的year字段非法: %w", id, err)
	}

	return book.Book{
		ID:     uint(n),
		Title:  fields["title"],
		Author: fields["author"],
		Year:   year,
	}, nil
}

// redisError Redis错误统一使用ErrCodeRedisError
func redisError(err error, message string) error {
	return apperrors.WrapWithCode(apperrors.ErrCodeRedisError, err, message)
}
