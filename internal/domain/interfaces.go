package domain

import (
	"context"

	"walle.finance/internal/model"
)

// Notifier delivers account emails. Delivery is fire-and-forget from the
// caller's perspective: a failure is reported but never rolls back the
// state change that triggered it.
type Notifier interface {
	SendActivation(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

type RegisterInput struct {
	FullName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginResult struct {
	User  *model.User
	Token string
}

type ActivationResult struct {
	// AlreadyActive reports an idempotent re-activation; not an error.
	AlreadyActive bool
}

// UserService is the account lifecycle: registration, activation, login,
// password recovery and authenticated profile updates.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Activate(ctx context.Context, token string) (*ActivationResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error

	UpdateFullName(ctx context.Context, userID, fullName string) (string, error)
	UpdateEmail(ctx context.Context, userID, email string) (string, error)
	UpdateUsername(ctx context.Context, userID, username string) (string, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword, confirmPassword string) (string, error)
}

type CreateTransactionInput struct {
	Type        string
	Amount      *float64
	Category    string
	Description string
	Date        string
}

// UpdateTransactionInput carries only the fields the client sent; nil
// pointers and empty strings are left untouched.
type UpdateTransactionInput struct {
	Type        string
	Amount      *float64
	Category    string
	Description *string
	Date        string
}

// TransactionService is owner-scoped CRUD: every mutation first confirms
// the record belongs to the requesting user.
type TransactionService interface {
	Create(ctx context.Context, userID string, in CreateTransactionInput) (*model.Transaction, error)
	Update(ctx context.Context, userID, id string, in UpdateTransactionInput) (*model.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string) ([]model.Transaction, error)
}
