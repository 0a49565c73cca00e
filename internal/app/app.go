package app

import (
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"github.com/salesdesk/salesdesk/config"
	"github.com/salesdesk/salesdesk/internal/domain"
	"github.com/salesdesk/salesdesk/internal/events"
	"github.com/salesdesk/salesdesk/internal/repository"
	"github.com/salesdesk/salesdesk/internal/service"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

const kafkaPublishTimeout = 5 * time.Second

type Application struct {
	appConfig        *config.AppConfig
	gormDB           *gorm.DB
	boltDB           *bbolt.DB
	sched            *cron.Cron
	bus              *events.Bus
	publisher        events.Publisher
	productService   *service.ProductService
	ticketService    *service.TicketService
	analyticsService *service.AnalyticsAggregator
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ ServiceProvider   = (*Application)(nil)
	_ EventBusProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig, bus: events.NewBus()}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Bus() *events.Bus {
	return a.bus
}

func (a *Application) Products() *service.ProductService {
	return a.productService
}

func (a *Application) Tickets() *service.TicketService {
	return a.ticketService
}

func (a *Application) Analytics() *service.AnalyticsAggregator {
	return a.analyticsService
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
	a.boltDB = nil
	a.initServices()
}

// OverrideBolt switches the application to a bolt store (used in tests).
func (a *Application) OverrideBolt(db *bbolt.DB) {
	a.boltDB = db
	a.gormDB = nil
	a.initServices()
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Initialize storage
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "bolt" {
		a.boltDB = getBoltDatabase(cfg.Database, cfg.GetDataDir())
	} else {
		a.gormDB = getDatabase(cfg.Database, cfg.GetDataDir())
	}
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.initEvents()
	a.initServices()

	if cfg.System.SeedDemo {
		a.checkProducts()
	}

	a.initJob()
}

// initEvents attaches the log subscriber and, when brokers are configured, the kafka bridge
func (a *Application) initEvents() {
	if err := a.bus.SubscribeAll(events.LogSubscriber, true); err != nil {
		zap.S().Errorf("event log subscriber error %s", err.Error())
	}
	if len(a.appConfig.Events.KafkaBrokers) == 0 {
		return
	}
	a.publisher = events.NewKafkaPublisher(a.appConfig.Events.KafkaBrokers, a.appConfig.Events.TopicPrefix)
	if err := events.Bridge(a.bus, a.publisher, kafkaPublishTimeout); err != nil {
		zap.S().Errorf("kafka bridge error %s", err.Error())
		return
	}
	zap.L().Info("kafka event bridge enabled",
		zap.String("namespace", "events"),
		zap.Strings("brokers", a.appConfig.Events.KafkaBrokers))
}

func (a *Application) initServices() {
	var (
		products repository.ProductRepository
		tickets  repository.TicketRepository
	)
	if a.boltDB != nil {
		products = repository.NewBoltProductRepository(a.boltDB)
		tickets = repository.NewBoltTicketRepository(a.boltDB)
	} else {
		products = repository.NewGormProductRepository(a.gormDB)
		tickets = repository.NewGormTicketRepository(a.gormDB)
	}
	a.productService = service.NewProductService(products, a.bus)
	a.ticketService = service.NewTicketService(tickets, a.bus)
	a.analyticsService = service.NewAnalyticsAggregator(a.productService, a.ticketService)
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if a.boltDB != nil {
		return repository.InitBoltBuckets(a.boltDB)
	}
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	return db.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	if a.boltDB != nil {
		_ = repository.DropBoltBuckets(a.boltDB)
		return
	}
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	a.DropAll()
	if err := a.MigrateDB(false); err != nil {
		zap.S().Error(err)
	}
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}

	a.bus.Wait()
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			zap.L().Warn("failed to close event publisher", zap.Error(err))
		}
	}
	if a.boltDB != nil {
		_ = a.boltDB.Close()
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
