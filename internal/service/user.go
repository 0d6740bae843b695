package service

import (
	"context"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"walle.finance/internal/auth"
	"walle.finance/internal/domain"
	"walle.finance/internal/model"
	"walle.finance/internal/store"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserServiceImpl implements domain.UserService: the account state machine
// Registered(inactive) -> Active, plus login, password recovery and
// authenticated profile updates.
type UserServiceImpl struct {
	users    *store.UserStore
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
	notifier domain.Notifier

	sessionTTL time.Duration
	linkTTL    time.Duration
}

func NewUserService(
	users *store.UserStore,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenService,
	notifier domain.Notifier,
	sessionTTL, linkTTL time.Duration,
) *UserServiceImpl {
	return &UserServiceImpl{
		users:      users,
		hasher:     hasher,
		tokens:     tokens,
		notifier:   notifier,
		sessionTTL: sessionTTL,
		linkTTL:    linkTTL,
	}
}

// Register creates an inactive user and emails an activation link.
func (s *UserServiceImpl) Register(ctx context.Context, in domain.RegisterInput) (*model.User, error) {
	switch {
	case in.FullName == "":
		return nil, domain.NewValidationError("MISSING_FULLNAME", "The 'Full Name' field is required.")
	case in.Username == "":
		return nil, domain.NewValidationError("MISSING_USERNAME", "The 'Username' field is required.")
	case in.Email == "":
		return nil, domain.NewValidationError("MISSING_EMAIL", "The 'Email' field is required.")
	case !emailPattern.MatchString(in.Email):
		return nil, domain.NewValidationError("INVALID_EMAIL", "The provided email is not valid.")
	case in.Password == "":
		return nil, domain.NewValidationError("MISSING_PASSWORD", "The 'Password' field is required.")
	case in.ConfirmPassword == "":
		return nil, domain.NewValidationError("MISSING_CONFIRM_PASSWORD", "The 'ConfirmPassword' field is required.")
	case in.Password != in.ConfirmPassword:
		return nil, domain.NewValidationError("PASSWORD_MISMATCH", "Passwords do not match.")
	}

	// Pre-check for precise conflict codes; the store's unique indexes
	// remain the authoritative constraint for concurrent registrations.
	if existing, err := s.users.FindByEmail(ctx, in.Email); err != nil {
		return nil, domain.NewInternalError("Error creating user.", err)
	} else if existing != nil {
		return nil, domain.NewConflictError("EMAIL_EXISTS", "The provided email is already in use.")
	}
	if existing, err := s.users.FindByUsername(ctx, in.Username); err != nil {
		return nil, domain.NewInternalError("Error creating user.", err)
	} else if existing != nil {
		return nil, domain.NewConflictError("USERNAME_EXISTS", "The provided username is already in use.")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.NewInternalError("Error creating user.", err)
	}

	user := &model.User{
		FullName: capitalizeFullName(in.FullName),
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		IsActive: false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch err {
		case store.ErrDuplicateEmail:
			return nil, domain.NewConflictError("EMAIL_EXISTS", "The provided email is already in use.")
		case store.ErrDuplicateUsername:
			return nil, domain.NewConflictError("USERNAME_EXISTS", "The provided username is already in use.")
		}
		return nil, domain.NewInternalError("Error creating user.", err)
	}

	logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user registered")

	if err := s.sendActivation(ctx, user); err != nil {
		// The user record persists; the activation email can be
		// retriggered by attempting a login while inactive.
		logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to send activation email")
		return nil, domain.NewInternalError("Error creating user.", err)
	}

	return user, nil
}

// Activate flips isActive exactly once. Re-activating an already-active
// account is an informational success, not an error.
func (s *UserServiceImpl) Activate(ctx context.Context, token string) (*domain.ActivationResult, error) {
	if token == "" {
		return nil, domain.NewValidationError("MISSING_TOKEN", "Activation token not provided.")
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.NewValidationError("INVALID_TOKEN", "Activation token is invalid or expired.")
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, domain.NewInternalError("Error activating account.", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("USER_NOT_FOUND", "User not found.")
	}

	if user.IsActive {
		return &domain.ActivationResult{AlreadyActive: true}, nil
	}

	if _, err := s.users.Update(ctx, user.ID, map[string]any{"is_active": true}); err != nil {
		return nil, domain.NewInternalError("Error activating account.", err)
	}

	logger.Info().Str("user_id", user.ID).Msg("account activated")
	return &domain.ActivationResult{}, nil
}

// Login verifies credentials and issues a session token. An inactive
// account never gets a session; instead a fresh activation email goes out.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	switch {
	case email == "":
		return nil, domain.NewValidationError("MISSING_EMAIL", "The 'Email' field is required.")
	case !emailPattern.MatchString(email):
		return nil, domain.NewValidationError("INVALID_EMAIL", "The provided email is not valid.")
	case password == "":
		return nil, domain.NewValidationError("MISSING_PASSWORD", "The 'Password' field is required.")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewInternalError("Error logging in.", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("USER_NOT_FOUND", "No user found with this email.")
	}

	if !user.IsActive {
		if err := s.sendActivation(ctx, user); err != nil {
			logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to re-send activation email")
		}
		return nil, domain.NewForbiddenError("USER_NOT_ACTIVE", "User account is not activated. Check your email for activation link.")
	}

	if !s.hasher.Check(password, user.Password) {
		return nil, domain.NewUnauthorizedError("INVALID_PASSWORD", "Incorrect password.")
	}

	token, err := s.sessionToken(user)
	if err != nil {
		return nil, domain.NewInternalError("Error logging in.", err)
	}

	logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &domain.LoginResult{User: user, Token: token}, nil
}

// ForgotPassword emails a short-lived reset link.
func (s *UserServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	switch {
	case email == "":
		return domain.NewValidationError("MISSING_EMAIL", "The 'Email' field is required.")
	case !emailPattern.MatchString(email):
		return domain.NewValidationError("INVALID_EMAIL", "The provided email is not valid.")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.NewInternalError("Error sending password reset email.", err)
	}
	if user == nil {
		// Reveals account existence; kept to match the established API
		// contract. A masked always-200 response is the hardening path.
		return domain.NewNotFoundError("USER_NOT_FOUND", "No user found with this email.")
	}

	token, err := s.tokens.Issue(auth.Claims{Email: user.Email}, s.linkTTL)
	if err != nil {
		return domain.NewInternalError("Error sending password reset email.", err)
	}

	if err := s.notifier.SendPasswordReset(ctx, user.Email, token); err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to send reset email")
		return domain.NewInternalError("Error sending password reset email.", err)
	}

	logger.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

// ResetPassword replaces the password hash for the account named by a
// valid reset token.
func (s *UserServiceImpl) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	switch {
	case token == "":
		return domain.NewValidationError("MISSING_TOKEN", "Token not provided.")
	case newPassword == "" || confirmPassword == "":
		return domain.NewValidationError("MISSING_PASSWORDS", "Password and confirmation are required.")
	case newPassword != confirmPassword:
		return domain.NewValidationError("PASSWORD_MISMATCH", "Passwords do not match.")
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return domain.NewValidationError("INVALID_TOKEN", "Reset token is invalid or expired.")
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return domain.NewInternalError("Error resetting password.", err)
	}
	if user == nil {
		return domain.NewNotFoundError("USER_NOT_FOUND", "User not found.")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.NewInternalError("Error resetting password.", err)
	}

	if _, err := s.users.Update(ctx, user.ID, map[string]any{"password": hash}); err != nil {
		return domain.NewInternalError("Error resetting password.", err)
	}

	logger.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

// UpdateFullName replaces the display name and returns a fresh session
// token carrying the new claims.
func (s *UserServiceImpl) UpdateFullName(ctx context.Context, userID, fullName string) (string, error) {
	if fullName == "" {
		return "", domain.NewValidationError("MISSING_FULLNAME", "The 'Full Name' field is required.")
	}

	return s.applyUpdate(ctx, userID, map[string]any{"full_name": capitalizeFullName(fullName)}, "Error updating full name.")
}

func (s *UserServiceImpl) UpdateEmail(ctx context.Context, userID, email string) (string, error) {
	switch {
	case email == "":
		return "", domain.NewValidationError("MISSING_EMAIL", "The 'Email' field is required.")
	case !emailPattern.MatchString(email):
		return "", domain.NewValidationError("INVALID_EMAIL", "The provided email is not valid.")
	}

	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return "", domain.NewInternalError("Error updating email.", err)
	} else if existing != nil && existing.ID != userID {
		return "", domain.NewConflictError("EMAIL_EXISTS", "Email already registered.")
	}

	return s.applyUpdate(ctx, userID, map[string]any{"email": email}, "Error updating email.")
}

func (s *UserServiceImpl) UpdateUsername(ctx context.Context, userID, username string) (string, error) {
	if username == "" {
		return "", domain.NewValidationError("MISSING_USERNAME", "The 'Username' field is required.")
	}

	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return "", domain.NewInternalError("Error updating username.", err)
	} else if existing != nil && existing.ID != userID {
		return "", domain.NewConflictError("USERNAME_EXISTS", "Username already in use.")
	}

	return s.applyUpdate(ctx, userID, map[string]any{"username": username}, "Error updating username.")
}

// UpdatePassword re-verifies the current password before replacing it.
// Outstanding session tokens stay valid until their own expiry.
func (s *UserServiceImpl) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword, confirmPassword string) (string, error) {
	switch {
	case currentPassword == "" || newPassword == "" || confirmPassword == "":
		return "", domain.NewValidationError("MISSING_PASSWORDS", "All password fields are required.")
	case newPassword != confirmPassword:
		return "", domain.NewValidationError("PASSWORD_MISMATCH", "New passwords do not match.")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", domain.NewInternalError("Error updating password.", err)
	}
	if user == nil {
		return "", domain.NewNotFoundError("USER_NOT_FOUND", "User not found.")
	}

	if !s.hasher.Check(currentPassword, user.Password) {
		return "", domain.NewUnauthorizedError("INVALID_PASSWORD", "Current password incorrect.")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return "", domain.NewInternalError("Error updating password.", err)
	}

	return s.applyUpdate(ctx, userID, map[string]any{"password": hash}, "Error updating password.")
}

func (s *UserServiceImpl) applyUpdate(ctx context.Context, userID string, fields map[string]any, errMsg string) (string, error) {
	updated, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", domain.NewNotFoundError("USER_NOT_FOUND", "User not found.")
		}
		return "", domain.NewInternalError(errMsg, err)
	}

	token, err := s.sessionToken(updated)
	if err != nil {
		return "", domain.NewInternalError(errMsg, err)
	}
	return token, nil
}

func (s *UserServiceImpl) sendActivation(ctx context.Context, user *model.User) error {
	token, err := s.tokens.Issue(auth.Claims{UserID: user.ID, Email: user.Email}, s.linkTTL)
	if err != nil {
		return err
	}
	return s.notifier.SendActivation(ctx, user.Email, token)
}

func (s *UserServiceImpl) sessionToken(user *model.User) (string, error) {
	return s.tokens.Issue(auth.Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	}, s.sessionTTL)
}

// capitalizeFullName title-cases each whitespace-separated word and joins
// them with single spaces.
func capitalizeFullName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
