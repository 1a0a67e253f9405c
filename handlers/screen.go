package handlers

import (
	"net/http"

	"github.com/2HgO/signup-go/errors"
	"github.com/2HgO/signup-go/forms"
	"github.com/2HgO/signup-go/models"
	"github.com/2HgO/signup-go/services"
	"github.com/2HgO/signup-go/types/requests"
	"github.com/2HgO/signup-go/types/responses"
	"github.com/2HgO/signup-go/utils"
	"go.uber.org/zap"
)

// ScreenHandler exposes the sign-up screen as JSON for script-driven
// clients.
type ScreenHandler interface {
	MountScreen(w http.ResponseWriter, r *http.Request)
	FetchScreen(w http.ResponseWriter, r *http.Request)
	ChangeField(w http.ResponseWriter, r *http.Request)
	BlurField(w http.ResponseWriter, r *http.Request)
	SubmitScreen(w http.ResponseWriter, r *http.Request)
	UnmountScreen(w http.ResponseWriter, r *http.Request)
	DrainToasts(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewScreenHandler(screens services.ScreenService, notifications services.NotificationService, middlewares MiddleWareHandler, log *zap.Logger) ScreenHandler {
	return &screenHandler{
		handler: handler{
			screenService:       screens,
			notificationService: notifications,
			middlewares:         middlewares,
			log:                 log,
		},
	}
}

type screenHandler struct {
	handler
}

func (s *screenHandler) ServeHttp(mux *http.ServeMux) {
	mw := []utils.MW{s.middlewares.AttachSession, utils.NoStore}

	mux.HandleFunc("POST /api/v1/screens", utils.Middleware(s.MountScreen, mw...))
	mux.HandleFunc("GET /api/v1/screens/{screen_id}", utils.Middleware(s.FetchScreen, mw...))
	mux.HandleFunc("POST /api/v1/screens/{screen_id}/change", utils.Middleware(s.ChangeField, mw...))
	mux.HandleFunc("POST /api/v1/screens/{screen_id}/blur", utils.Middleware(s.BlurField, mw...))
	mux.HandleFunc("POST /api/v1/screens/{screen_id}/submit", utils.Middleware(s.SubmitScreen, mw...))
	mux.HandleFunc("DELETE /api/v1/screens/{screen_id}", utils.Middleware(s.UnmountScreen, mw...))

	mux.HandleFunc("GET /api/v1/toasts", utils.Middleware(s.DrainToasts, mw...))
}

func screenResponse(state *responses.ScreenState) *responses.Response[*responses.ScreenState] {
	return &responses.Response[*responses.ScreenState]{
		Status:  "successful",
		Message: "Screen state retrieved successfully",
		Data:    state,
	}
}

func (s *screenHandler) MountScreen(w http.ResponseWriter, r *http.Request) {
	state := s.screenService.Mount(r.Context())
	utils.JSON(w, http.StatusCreated, screenResponse(state))
}

func (s *screenHandler) FetchScreen(w http.ResponseWriter, r *http.Request) {
	state, err := s.screenService.State(r.Context(), r.PathValue("screen_id"))
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, http.StatusOK, screenResponse(state))
}

func (s *screenHandler) ChangeField(w http.ResponseWriter, r *http.Request) {
	req := new(requests.ChangeFieldRequest)
	err := utils.Bind(r, req)
	if err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	state, err := s.screenService.Change(r.Context(), req.ScreenID, forms.Field(req.Field), req.Value)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, http.StatusOK, screenResponse(state))
}

func (s *screenHandler) BlurField(w http.ResponseWriter, r *http.Request) {
	req := new(requests.BlurFieldRequest)
	err := utils.Bind(r, req)
	if err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	state, err := s.screenService.Blur(r.Context(), req.ScreenID, forms.Field(req.Field))
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, http.StatusOK, screenResponse(state))
}

func (s *screenHandler) SubmitScreen(w http.ResponseWriter, r *http.Request) {
	state, status, err := s.screenService.Submit(r.Context(), r.PathValue("screen_id"))
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	code := http.StatusOK
	switch status {
	case forms.SubmitInvalid:
		code = http.StatusUnprocessableEntity
	case forms.SubmitDropped:
		code = http.StatusAccepted
	}
	utils.JSON(w, code, screenResponse(state))
}

func (s *screenHandler) UnmountScreen(w http.ResponseWriter, r *http.Request) {
	err := s.screenService.Unmount(r.Context(), r.PathValue("screen_id"))
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *screenHandler) DrainToasts(w http.ResponseWriter, r *http.Request) {
	toasts := s.notificationService.Drain(services.SessionID(r.Context()))
	if toasts == nil {
		toasts = []models.Toast{}
	}

	utils.JSON(w, http.StatusOK, &responses.Response[[]models.Toast]{
		Status:  "successful",
		Message: "Toasts retrieved successfully",
		Data:    toasts,
	})
}
