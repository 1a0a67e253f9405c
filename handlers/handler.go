package handlers

import (
	"net/http"

	"github.com/2HgO/signup-go/config"
	"github.com/2HgO/signup-go/services"
	"go.uber.org/zap"
)

type handler struct {
	accountService      services.AccountService
	screenService       services.ScreenService
	notificationService services.NotificationService
	middlewares         MiddleWareHandler
	cfg                 *config.Config

	log *zap.Logger
}

type Handler interface {
	ServeHttp(*http.ServeMux)
}
