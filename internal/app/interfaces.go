package app

import (
	"github.com/robfig/cron/v3"
	"github.com/salesdesk/salesdesk/config"
	"github.com/salesdesk/salesdesk/internal/events"
	"github.com/salesdesk/salesdesk/internal/service"
	"gorm.io/gorm"
)

// DBProvider provides database access. DB is nil when the bolt store is in use.
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// ServiceProvider provides the product, ticket and analytics services
type ServiceProvider interface {
	Products() *service.ProductService
	Tickets() *service.TicketService
	Analytics() *service.AnalyticsAggregator
}

// EventBusProvider provides the domain event bus
type EventBusProvider interface {
	Bus() *events.Bus
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	ServiceProvider
	EventBusProvider
	SchedulerProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
