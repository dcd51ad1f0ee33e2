package mysql

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，生产环境使用MySQL，本地开发/测试可切换SQLite
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动建表（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择方言
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Storage.Driver == config.DriverSQLite {
		// SQLite同一时刻只允许一个写者
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	// 6. 自动建表
	if err := db.AutoMigrate(&BookModel{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// openDialector 根据存储驱动选择GORM方言
func openDialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Storage.Driver {
	case config.DriverMySQL:
		return mysql.Open(cfg.Database.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.Database.SQLitePath), nil
	default:
		return nil, fmt.Errorf("存储驱动%q不是关系型数据库", cfg.Storage.Driver)
	}
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/book/entity.go是领域实体，不依赖GORM
// 3. 表只有id/title/author/year四列，删除为物理删除
type BookModel struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Title  string `gorm:"size:255;not null"`
	Author string `gorm:"size:255;not null"`
	Year   int    `gorm:"not null"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
