package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"walle.finance/internal/model"
)

var (
	// ErrDuplicateEmail and ErrDuplicateUsername surface unique-index
	// violations on insert, so a concurrent registration that slips past
	// the service's pre-check still resolves to a conflict, not a crash.
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicateUsername = errors.New("username already in use")
)

// UserStore is the user collection adapter: indexed point lookups plus
// uniqueness-checked create and partial update.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByEmail returns nil without error when no user matches.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, "email = ?", email)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.findOne(ctx, "username = ?", username)
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *UserStore) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user. The unique indexes on email and username are
// the authoritative constraint; a violation is translated into the
// matching duplicate error.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if existing, ferr := s.FindByEmail(ctx, user.Email); ferr == nil && existing != nil {
			return ErrDuplicateEmail
		}
		return ErrDuplicateUsername
	}
	return err
}

// Update applies only the given fields and returns the updated record.
func (s *UserStore) Update(ctx context.Context, id string, fields map[string]any) (*model.User, error) {
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
