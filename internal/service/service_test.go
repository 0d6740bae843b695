package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"walle.finance/internal/auth"
	"walle.finance/internal/domain"
	"walle.finance/internal/model"
	"walle.finance/internal/store"
)

const testSecret = "test-secret"

type sentMail struct {
	kind  string
	email string
	token string
}

// fakeNotifier records what would have been emailed.
type fakeNotifier struct {
	sent []sentMail
	err  error
}

func (f *fakeNotifier) SendActivation(_ context.Context, email, token string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{kind: "activation", email: email, token: token})
	return nil
}

func (f *fakeNotifier) SendPasswordReset(_ context.Context, email, token string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{kind: "reset", email: email, token: token})
	return nil
}

func (f *fakeNotifier) last(t *testing.T) sentMail {
	t.Helper()
	require.NotEmpty(t, f.sent, "expected at least one mail")
	return f.sent[len(f.sent)-1]
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Transaction{}))
	return db
}

type userFixture struct {
	svc      *UserServiceImpl
	users    *store.UserStore
	tokens   *auth.TokenService
	hasher   *auth.PasswordHasher
	notifier *fakeNotifier
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	db := newTestDB(t)
	users := store.NewUserStore(db)
	hasher := auth.NewPasswordHasher(4)
	tokens := auth.NewTokenService(testSecret)
	notifier := &fakeNotifier{}

	svc := NewUserService(users, hasher, tokens, notifier, 24*time.Hour, 25*time.Minute)
	return &userFixture{svc: svc, users: users, tokens: tokens, hasher: hasher, notifier: notifier}
}

func validRegistration() domain.RegisterInput {
	return domain.RegisterInput{
		FullName:        "jane doe",
		Username:        "jdoe",
		Email:           "jane@x.com",
		Password:        "p1",
		ConfirmPassword: "p1",
	}
}

func requireAppError(t *testing.T, err error, code string, status int) *domain.AppError {
	t.Helper()
	var appErr *domain.AppError
	require.True(t, errors.As(err, &appErr), "expected *domain.AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
	require.Equal(t, status, appErr.Status)
	return appErr
}
