package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/salesdesk/salesdesk/config"
	"github.com/salesdesk/salesdesk/internal/api"
	"github.com/salesdesk/salesdesk/internal/app"
	"github.com/salesdesk/salesdesk/internal/webserver"
	"go.uber.org/zap"
)

var (
	BuildVersion = "develop"
	h            = flag.Bool("h", false, "help usage")
	showVer      = flag.Bool("v", false, "show version")
	conffile     = flag.String("c", "", "config yaml file")
	initdb       = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(BuildVersion)
		os.Exit(0)
	}
	if *h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)

	if *initdb {
		application.InitDb()
		application.Release()
		os.Exit(0)
	}

	srv := webserver.Init(cfg, application)
	api.Init()

	go func() {
		if err := srv.Start(); err != nil {
			zap.S().Errorf("web server error: %s", err.Error())
		}
	}()

	shutdownTimeout := time.Duration(cfg.Web.ShutdownTimeout) * time.Second
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"web-server": func(ctx context.Context) error {
				zap.L().Info("Graceful shutdown initiated...")
				err := srv.Shutdown(ctx)
				application.Release()
				return err
			},
		},
	)

	os.Exit(<-wait)
}
