package handlers

import (
	"net/http"

	"github.com/2HgO/signup-go/config"
	"github.com/2HgO/signup-go/errors"
	"github.com/2HgO/signup-go/forms"
	"github.com/2HgO/signup-go/services"
	"github.com/2HgO/signup-go/types/requests"
	"github.com/2HgO/signup-go/types/responses"
	"github.com/2HgO/signup-go/utils"
	"github.com/2HgO/signup-go/views"
	"go.uber.org/zap"
)

// SignUpHandler serves the browser sign-up screen and its navigation
// target.
type SignUpHandler interface {
	ShowSignUp(w http.ResponseWriter, r *http.Request)
	SubmitSignUp(w http.ResponseWriter, r *http.Request)
	ShowSignIn(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewSignUpHandler(cfg *config.Config, screens services.ScreenService, notifications services.NotificationService, middlewares MiddleWareHandler, log *zap.Logger) SignUpHandler {
	return &signUpHandler{
		handler: handler{
			cfg:                 cfg,
			screenService:       screens,
			notificationService: notifications,
			middlewares:         middlewares,
			log:                 log,
		},
	}
}

type signUpHandler struct {
	handler
}

func (s *signUpHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("GET /signup", utils.Middleware(s.ShowSignUp, s.middlewares.AttachSession, utils.NoStore))
	mux.HandleFunc("POST /signup/{screen_id}", utils.Middleware(s.SubmitSignUp, s.middlewares.AttachSession, utils.NoStore))
	mux.HandleFunc("GET /signin", s.middlewares.AttachSession(s.ShowSignIn))
}

func (s *signUpHandler) renderSignUp(w http.ResponseWriter, r *http.Request, code int, state *responses.ScreenState) {
	err := views.RenderSignUp(w, code, &views.SignUpPage{
		Lang:   s.cfg.Locale,
		Screen: state,
		Toasts: s.notificationService.Drain(services.SessionID(r.Context())),
	})
	if err != nil {
		s.log.Error("rendering sign up page", zap.Error(err))
	}
}

func (s *signUpHandler) ShowSignUp(w http.ResponseWriter, r *http.Request) {
	state := s.screenService.Mount(r.Context())
	s.renderSignUp(w, r, http.StatusOK, state)
}

func (s *signUpHandler) SubmitSignUp(w http.ResponseWriter, r *http.Request) {
	req := new(requests.SignUpFormRequest)
	if err := utils.BindForm(r, req); err != nil {
		s.log.Debug("binding sign up form", zap.Error(err))
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	values := forms.Values{Username: req.Username, Password: req.Password, ConfirmPassword: req.ConfirmPassword}
	state, status, err := s.screenService.SubmitValues(r.Context(), req.ScreenID, values)
	if err != nil {
		s.screenGone(w, r, err)
		return
	}

	switch {
	case status == forms.SubmitInvalid:
		s.renderSignUp(w, r, http.StatusUnprocessableEntity, state)
	case status == forms.SubmitDropped:
		s.renderSignUp(w, r, http.StatusAccepted, state)
	case state.Location != "":
		http.Redirect(w, r, state.Location, http.StatusSeeOther)
	default:
		s.renderSignUp(w, r, http.StatusOK, state)
	}
}

// screenGone sends the browser back to a fresh screen when its screen was
// swept or belongs to another session.
func (s *signUpHandler) screenGone(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrScreenNotFound) {
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}
	errors.AsAppError(err).Serialize(w)
}

func (s *signUpHandler) ShowSignIn(w http.ResponseWriter, r *http.Request) {
	err := views.RenderSignIn(w, http.StatusOK, &views.SignInPage{
		Lang:   s.cfg.Locale,
		Toasts: s.notificationService.Drain(services.SessionID(r.Context())),
	})
	if err != nil {
		s.log.Error("rendering sign in page", zap.Error(err))
	}
}
