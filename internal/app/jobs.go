package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const digestTimeout = 30 * time.Second

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	if loc == nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if spec := a.appConfig.Jobs.AnalyticsDigest; spec != "" {
		if _, err := a.sched.AddFunc(spec, a.SchedAnalyticsDigestTask); err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	a.sched.Start()
}

// SchedAnalyticsDigestTask logs the current analytics projections
func (a *Application) SchedAnalyticsDigestTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	analytics, err := a.analyticsService.Analytics(ctx)
	if err != nil {
		zap.L().Error("analytics digest failed", zap.String("namespace", "jobs"), zap.Error(err))
		return
	}
	for _, p := range analytics.SoldProducts {
		zap.L().Info("analytics digest",
			zap.String("namespace", "jobs"),
			zap.String("product_type", p.ProductType),
			zap.Int64("count", p.Count),
			zap.Float64("total", p.Total))
	}
	for _, t := range analytics.TicketsList {
		zap.L().Info("analytics digest",
			zap.String("namespace", "jobs"),
			zap.String("payment_type", t.PaymentType),
			zap.Int64("count", t.Count),
			zap.Float64("total", t.Total))
	}
}
