package services

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/2HgO/signup-go/errors"
	"github.com/2HgO/signup-go/models"
	"github.com/2HgO/signup-go/types/requests"
	"github.com/2HgO/signup-go/types/responses"
)

// AccountService is the user-account API backing store.
type AccountService interface {
	CreateAccount(context.Context, *requests.SignUpRequest) (*responses.Response[*models.Account], error)
	FetchAccountDetails(context.Context, *requests.FetchAccountDetailsRequest) (*responses.Response[*models.Account], error)
}

func NewAccountService(dataDatabase *sql.DB, webhookService WebhookService, log *zap.Logger) AccountService {
	return &accountService{
		service: service{
			dataDB: dataDatabase,
			log:    log,
			now:    time.Now,
		},
		webhookService: webhookService,
	}
}

type accountService struct {
	service
	webhookService WebhookService
}

func (a *accountService) CreateAccount(ctx context.Context, req *requests.SignUpRequest) (*responses.Response[*models.Account], error) {
	now := a.now().UTC()

	account := &models.Account{
		ID:        uuid.NewString(),
		SN:        cuid.New(),
		Username:  req.Username,
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	password, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewFatalError(err)
	}

	tx, err := a.dataDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	// Defer a rollback in case anything fails.
	defer tx.Rollback()

	_, err = sq.
		Insert("accounts").
		Columns("id", "sn", "username", "password", "created_at", "updated_at").
		Values(account.ID, account.SN, account.Username, string(password), now, now).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	a.log.Info("account created", zap.String("account_id", account.ID), zap.String("username", account.Username))
	a.webhookService.SendAccountCreatedEvent(account)

	return &responses.Response[*models.Account]{
		Status:  "successful",
		Message: "Account created successfully",
		Data:    account,
	}, nil
}

func (a *accountService) FetchAccountDetails(ctx context.Context, req *requests.FetchAccountDetailsRequest) (*responses.Response[*models.Account], error) {
	account := new(models.Account)
	var createdAt, updatedAt time.Time

	err := sq.
		Select("id", "sn", "username", "created_at", "updated_at").
		From("accounts").
		Where(sq.Eq{"id": req.UserID}).
		RunWith(a.dataDB).
		QueryRowContext(ctx).
		Scan(&account.ID, &account.SN, &account.Username, &createdAt, &updatedAt)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	account.CreatedAt = &createdAt
	account.UpdatedAt = &updatedAt

	return &responses.Response[*models.Account]{
		Status:  "successful",
		Message: "Account details retrieved successfully",
		Data:    account,
	}, nil
}
