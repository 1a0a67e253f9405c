package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/MadAppGang/httplog"
	lzap "github.com/MadAppGang/httplog/zap"
	gh "github.com/gorilla/handlers"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/2HgO/signup-go/config"
	"github.com/2HgO/signup-go/forms"
	"github.com/2HgO/signup-go/handlers"
	"github.com/2HgO/signup-go/services"
)

func NewHttpServer(lc fx.Lifecycle, cfg *config.Config, handler http.Handler, log *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		WriteTimeout: cfg.UserAPITimeout + time.Second*15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

func NewServeMux(routers []handlers.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	for _, router := range routers {
		router.ServeHttp(mux)
	}
	return mux
}

// recoveryLogger routes recovered panics into zap.
type recoveryLogger struct {
	log *zap.SugaredLogger
}

func (r recoveryLogger) Println(v ...interface{}) {
	r.log.Error(v...)
}

func NewRootHandler(mux *http.ServeMux, log *zap.Logger) http.Handler {
	var h http.Handler = mux
	h = httplog.LoggerWithFormatter(lzap.DefaultZapLogger(log, zap.InfoLevel, "http request"))(h)
	h = gh.RecoveryHandler(gh.RecoveryLogger(recoveryLogger{log: log.Sugar()}), gh.PrintRecoveryStack(true))(h)
	return gh.ProxyHeaders(h)
}

func NewMessages(cfg *config.Config) (*forms.Messages, error) {
	return forms.NewMessages(cfg.Locale)
}

func StartScheduler(lc fx.Lifecycle, scheduler services.SchedulerService) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return scheduler.ScheduleIdleSweep()
		},
		OnStop: func(context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}
