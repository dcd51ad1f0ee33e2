package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Mode:            "test",
			ShutdownTimeout: time.Second,
		},
		Storage: config.StorageConfig{Driver: config.DriverMemory, Seed: true},
		Log:     config.LogConfig{Level: "error", Format: "json", Output: "stderr"},
	}
}

func TestInitializeApp_RunAndShutdown(t *testing.T) {
	app, cleanup, err := InitializeApp(testConfig())
	require.NoError(t, err)
	defer cleanup()

	// 端口0由系统分配
	app.server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("服务未在超时时间内关闭")
	}
}

func TestInitializeApp_UnreachableStore(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = config.DriverRedis
	cfg.Redis = config.RedisConfig{Host: "127.0.0.1", Port: 1, DialTimeout: 100 * time.Millisecond}

	_, _, err := InitializeApp(cfg)
	assert.Error(t, err)
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)

	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serveCmd.Name())
}
