package webserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/salesdesk/salesdesk/config"
	"go.uber.org/zap"
)

// AppContextKey is the echo context key holding the application context
const AppContextKey = "appctx"

var server *AdminServer

type AdminServer struct {
	root   *echo.Echo
	api    *echo.Group
	config *config.AppConfig
}

// Init creates the global server. appCtx is stored in every request context under AppContextKey.
func Init(cfg *config.AppConfig, appCtx interface{}) *AdminServer {
	server = NewAdminServer(cfg, appCtx)
	return server
}

// GetServer returns the global server
func GetServer() *AdminServer {
	return server
}

func NewAdminServer(cfg *config.AppConfig, appCtx interface{}) *AdminServer {
	s := &AdminServer{config: cfg}
	s.root = echo.New()
	s.root.Pre(middleware.RemoveTrailingSlash())
	s.root.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll:   true,
		DisablePrintStack: !cfg.System.Debug,
	}))
	s.root.Use(ZapLogger())
	s.root.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	})
	s.root.JSONSerializer = &JSONSerializer{}
	s.root.HTTPErrorHandler = ErrorHandler
	s.root.HideBanner = true
	s.root.HidePort = true
	if cfg.System.Debug {
		s.root.Logger.SetLevel(log.DEBUG)
	} else {
		s.root.Logger.SetLevel(log.INFO)
	}

	s.root.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.api = s.root.Group(cfg.Web.ApiPrefix)
	return s
}

// Echo exposes the underlying echo instance, mostly for tests
func (s *AdminServer) Echo() *echo.Echo {
	return s.root
}

// Start serves HTTP until Shutdown is called
func (s *AdminServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Web.Host, s.config.Web.Port)
	zap.S().Infof("Prepare to start web server at %s", addr)
	err := s.root.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *AdminServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}

// ZapLogger logs every request through the global zap logger
func ZapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			zap.L().Info("http request",
				zap.String("namespace", "web"),
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Int64("bytes_out", res.Size),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			)
			return nil
		}
	}
}
