package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/2HgO/signup-go/errors"
	"github.com/2HgO/signup-go/models"
	"github.com/2HgO/signup-go/types/requests"
)

type bcryptOf string

func (b bcryptOf) Match(v driver.Value) bool {
	hash, ok := v.(string)
	return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte(b)) == nil
}

type webhookRecorder struct {
	mu       sync.Mutex
	accounts []*models.Account
}

func (w *webhookRecorder) SendAccountCreatedEvent(account *models.Account) WebhookService {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.accounts = append(w.accounts, account)
	return w
}

func (w *webhookRecorder) sent() []*models.Account {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*models.Account(nil), w.accounts...)
}

func newTestAccountService(t *testing.T) (AccountService, sqlmock.Sqlmock, *webhookRecorder) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	hooks := new(webhookRecorder)
	return NewAccountService(db, hooks, zaptest.NewLogger(t)), mock, hooks
}

func TestCreateAccount(t *testing.T) {
	svc, mock, hooks := newTestAccountService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "alice1", bcryptOf("password1"), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := svc.CreateAccount(context.Background(), &requests.SignUpRequest{Username: "alice1", Password: "password1"})
	require.NoError(t, err)

	assert.Equal(t, "successful", res.Status)
	assert.Equal(t, "alice1", res.Data.Username)
	assert.NotEmpty(t, res.Data.ID)
	assert.NotEmpty(t, res.Data.SN)
	assert.Nil(t, res.Data.Password)
	assert.Equal(t, []*models.Account{res.Data}, hooks.sent())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	svc, mock, hooks := newTestAccountService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice1' for key 'username'"})
	mock.ExpectRollback()

	_, err := svc.CreateAccount(context.Background(), &requests.SignUpRequest{Username: "alice1", Password: "password1"})
	require.Error(t, err)

	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.ErrEntryExists, appErr.Type)
	assert.Equal(t, "username already taken", appErr.Message)
	assert.Empty(t, hooks.sent())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAccountDetails(t *testing.T) {
	svc, mock, _ := newTestAccountService(t)
	created := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, sn, username, created_at, updated_at FROM accounts WHERE id = ?").
		WithArgs("5f1b1c9e-0000-4000-8000-000000000001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "sn", "username", "created_at", "updated_at"}).
			AddRow("5f1b1c9e-0000-4000-8000-000000000001", "c123", "alice1", created, created))

	res, err := svc.FetchAccountDetails(context.Background(), &requests.FetchAccountDetailsRequest{UserID: "5f1b1c9e-0000-4000-8000-000000000001"})
	require.NoError(t, err)
	assert.Equal(t, "alice1", res.Data.Username)
	assert.Equal(t, created, *res.Data.CreatedAt)
}

func TestFetchAccountDetailsNotFound(t *testing.T) {
	svc, mock, _ := newTestAccountService(t)

	mock.ExpectQuery("SELECT .* FROM accounts").WillReturnError(sql.ErrNoRows)

	_, err := svc.FetchAccountDetails(context.Background(), &requests.FetchAccountDetailsRequest{UserID: "missing"})
	assert.Equal(t, errors.ErrNotFound, errors.AsAppError(err).Type)
}
