package handlers

import (
	"net/http"

	"github.com/2HgO/signup-go/errors"
	"github.com/2HgO/signup-go/services"
	"github.com/2HgO/signup-go/types/requests"
	"github.com/2HgO/signup-go/utils"
	"go.uber.org/zap"
)

type AccountHandler interface {
	SignUp(w http.ResponseWriter, r *http.Request)
	FetchAccountDetails(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewAccountHandler(accountService services.AccountService, log *zap.Logger) AccountHandler {
	return &accountHandler{
		handler: handler{accountService: accountService, log: log},
	}
}

type accountHandler struct {
	handler
}

func (a *accountHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/users/signup", a.SignUp)
	mux.HandleFunc("GET /api/v1/users/{user_id}", a.FetchAccountDetails)
}

func (a *accountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	req := new(requests.SignUpRequest)
	err := utils.Bind(r, req)
	if err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	res, err := a.accountService.CreateAccount(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, http.StatusCreated, res)
}

func (a *accountHandler) FetchAccountDetails(w http.ResponseWriter, r *http.Request) {
	req := new(requests.FetchAccountDetailsRequest)
	err := utils.Bind(r, req)
	if err != nil {
		errors.HandleBindError(err).Serialize(w)
		return
	}

	res, err := a.accountService.FetchAccountDetails(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, http.StatusOK, res)
}
