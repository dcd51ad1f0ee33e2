package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
)

// NewBookRepository 根据storage.driver创建图书仓储
// 返回的cleanup负责关闭底层连接，由Wire在进程退出时调用
//
// 存储选择：
//   - memory: 进程内存，重启后数据丢失
//   - mysql / sqlite: GORM，表books
//   - redis: Hash + 有序集合
func NewBookRepository(cfg *config.Config, log *zap.Logger) (book.Repository, func(), error) {
	repo, cleanup, err := open(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Storage.Seed {
		n, err := Seed(context.Background(), repo, SeedBooks())
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("写入示例图书失败: %w", err)
		}
		if n > 0 {
			log.Info("已写入示例图书", zap.Int("count", n))
		}
	}

	log.Info("图书存储已就绪", zap.String("driver", cfg.Storage.Driver))
	return Instrument(repo), cleanup, nil
}

func open(cfg *config.Config) (book.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.NewBookRepository(), func() {}, nil

	case config.DriverMySQL, config.DriverSQLite:
		db, err := mysql.NewDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
		}
		return mysql.NewBookRepository(db), func() { _ = sqlDB.Close() }, nil

	case config.DriverRedis:
		client, err := redis.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewBookRepository(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("不支持的存储驱动: %q", cfg.Storage.Driver)
	}
}
