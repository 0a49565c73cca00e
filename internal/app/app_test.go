package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/salesdesk/salesdesk/config"
	"github.com/salesdesk/salesdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig(t *testing.T, dbType string) *config.AppConfig {
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Database.Type = dbType
	cfg.Database.Name = "salesdesk-test.db"
	cfg.Jobs.AnalyticsDigest = ""
	require.NoError(t, os.MkdirAll(cfg.GetDataDir(), 0o755))
	return &cfg
}

func TestApplicationInitSqlite(t *testing.T) {
	cfg := testConfig(t, "sqlite")
	cfg.System.SeedDemo = true

	a := NewApplication(cfg)
	a.Init(cfg)
	defer a.Release()

	assert.NotNil(t, a.DB())
	assert.FileExists(t, filepath.Join(cfg.GetDataDir(), cfg.Database.Name))

	rows, err := a.Products().SalesByProductType(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3, "demo catalogue spans three product types")
}

func TestApplicationInitBolt(t *testing.T) {
	cfg := testConfig(t, "bolt")

	a := NewApplication(cfg)
	a.Init(cfg)
	defer a.Release()

	assert.Nil(t, a.DB())
	created, err := a.Tickets().Create(context.Background(), domain.Ticket{PaymentType: "CASH", Total: domain.Amount(3)})
	require.NoError(t, err)

	a.InitDb()
	_, err = a.Tickets().FindByID(context.Background(), created.ID)
	assert.Error(t, err, "InitDb drops every stored document")
}

func TestCheckProductsSeedsOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	a := NewApplication(testConfig(t, "sqlite"))
	a.OverrideDB(db)
	require.NoError(t, a.MigrateDB(false))

	a.checkProducts()
	a.checkProducts()

	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}

func TestSchedAnalyticsDigestTask(t *testing.T) {
	bdb, err := bbolt.Open(filepath.Join(t.TempDir(), "digest.bolt"), 0o600, &bbolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	defer bdb.Close()

	a := NewApplication(testConfig(t, "bolt"))
	a.OverrideBolt(bdb)
	require.NoError(t, a.MigrateDB(false))

	_, err = a.Tickets().Create(context.Background(), domain.Ticket{PaymentType: "VISA", Total: domain.Amount(20)})
	require.NoError(t, err)

	assert.NotPanics(t, a.SchedAnalyticsDigestTask)
}
