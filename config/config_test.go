package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SALESDESK_SYSTEM_WORKER_DIR", t.TempDir())

	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))

	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "@every 10m", cfg.Jobs.AnalyticsDigest)
	assert.DirExists(t, cfg.GetLogDir())
	assert.DirExists(t, cfg.GetDataDir())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "salesdesk.yml")
	content := []byte(`
system:
  workdir: ` + dir + `
web:
  port: 9000
database:
  type: postgres
  name: shop
events:
  kafka_brokers: ["k1:9092"]
`)
	require.NoError(t, os.WriteFile(cfile, content, 0o600))

	t.Setenv("SALESDESK_DB_TYPE", "bolt")
	t.Setenv("SALESDESK_SYSTEM_SEED_DEMO", "true")
	t.Setenv("SALESDESK_WEB_PORT", "not-a-number")
	t.Setenv("SALESDESK_KAFKA_BROKERS", "a:9092,b:9092")

	cfg := LoadConfig(cfile)

	assert.Equal(t, 9000, cfg.Web.Port, "invalid env ints are ignored")
	assert.Equal(t, "bolt", cfg.Database.Type)
	assert.Equal(t, "shop", cfg.Database.Name)
	assert.True(t, cfg.System.SeedDemo)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Events.KafkaBrokers)
	// untouched sections keep their defaults
	assert.Equal(t, "salesdesk.", cfg.Events.TopicPrefix)
}
