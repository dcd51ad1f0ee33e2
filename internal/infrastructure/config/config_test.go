package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp 切换到空目录,避免读到仓库里的config/config.yaml
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.Seed)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_File(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "bookshelf.yaml")
	content := `
server:
  port: 9090
  mode: release
storage:
  driver: sqlite
  seed: false
database:
  sqlite_path: /tmp/books.db
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.False(t, cfg.Storage.Seed)
	assert.Equal(t, "/tmp/books.db", cfg.Database.SQLitePath)
	assert.Equal(t, "json", cfg.Log.Format)
	// 未出现在文件中的键保留默认值
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("BOOKSHELF_STORAGE_DRIVER", "redis")
	t.Setenv("BOOKSHELF_SERVER_PORT", "7070")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := chdirTemp(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "端口越界", env: map[string]string{"BOOKSHELF_SERVER_PORT": "70000"}},
		{name: "未知运行模式", env: map[string]string{"BOOKSHELF_SERVER_MODE": "prod"}},
		{name: "未知存储驱动", env: map[string]string{"BOOKSHELF_STORAGE_DRIVER": "mongo"}},
		{name: "未知日志格式", env: map[string]string{"BOOKSHELF_LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 3306, User: "root", Password: "root", DBName: "books_db",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:root@tcp(db:3306)/books_db?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}
