package main

import (
	"log"
	"net/http"

	"github.com/madflojo/tasks"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/2HgO/signup-go/client"
	"github.com/2HgO/signup-go/config"
	"github.com/2HgO/signup-go/db"
	"github.com/2HgO/signup-go/forms"
	"github.com/2HgO/signup-go/handlers"
	"github.com/2HgO/signup-go/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	fx.New(appOptions(cfg)).Run()
}

func appOptions(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			NewHttpServer,
			NewRootHandler,
			fx.Annotate(
				NewServeMux,
				fx.ParamTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewSignUpHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewScreenHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			handlers.NewMiddlewareHandler,
			fx.Annotate(
				client.NewUserAPI,
				fx.As(new(services.AccountAPI)),
			),
			services.NewScreenService,
			services.NewNotificationService,
			services.NewSchedulerService,
			NewMessages,
			forms.NewRules,
			tasks.New,
			zap.NewProduction,
		),
		accountAPI(cfg),
		fx.Invoke(StartScheduler),
		fx.Invoke(func(*http.Server) {}),
	)
}

// accountAPI hosts the user-account API in this process when enabled.
func accountAPI(cfg *config.Config) fx.Option {
	if !cfg.ServeAccountAPI {
		return fx.Options()
	}
	return fx.Provide(
		fx.Annotate(
			handlers.NewAccountHandler,
			fx.As(new(handlers.Handler)),
			fx.ResultTags(`group:"handlers"`),
		),
		services.NewAccountService,
		services.NewWebhookService,
		db.GetDataDBConnection,
	)
}
