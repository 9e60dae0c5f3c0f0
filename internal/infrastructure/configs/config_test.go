package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := Load("")
	req.NoError(err)

	req.Equal("0.0.0.0", cfg.HTTP.Host)
	req.Equal(uint16(8080), cfg.HTTP.Port)
	req.Equal(10, cfg.RateLimiter.MaxRatePerSecond)
	req.Empty(cfg.Mongo.URI)
	req.False(cfg.Amqp.Enabled)
	req.Equal(3*time.Second, cfg.Relay.HistoryTimeout)
	req.Equal(2*time.Second, cfg.Relay.CommitTimeout)
	req.Equal(1024, cfg.Relay.CommitQueueSize)
	req.Equal(256, cfg.Relay.ClientBufferSize)
}

func TestLoad_FromFile(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
http:
  port: 9999
mongo:
  uri: mongodb://localhost:27017
  database: inkboard_test
relay:
  commit_queue_size: 64
`)
	req.NoError(os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	req.NoError(err)

	req.Equal(uint16(9999), cfg.HTTP.Port)
	req.Equal("mongodb://localhost:27017", cfg.Mongo.URI)
	req.Equal("inkboard_test", cfg.Mongo.Database)
	req.Equal(64, cfg.Relay.CommitQueueSize)

	// Untouched keys keep their defaults
	req.Equal("0.0.0.0", cfg.HTTP.Host)
}

func TestLoad_EnvOverrides(t *testing.T) {
	req := require.New(t)

	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("RABBITMQ_URI", "amqp://broker:5672/")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := Load("")
	req.NoError(err)

	req.Equal("mongodb://db:27017", cfg.Mongo.URI)
	req.Equal("amqp://broker:5672/", cfg.Amqp.URI)
	req.True(cfg.Amqp.Enabled)
	req.Equal(uint16(7070), cfg.HTTP.Port)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
