package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"walle.finance/internal/model"
)

// TransactionStore persists transaction records. All reads and writes are
// scoped by owner; a lookup with the wrong user behaves as not-found.
type TransactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Create(ctx context.Context, tx *model.Transaction) error {
	return s.db.WithContext(ctx).Create(tx).Error
}

// FindOwned returns nil without error when the record is absent or is
// owned by a different user.
func (s *TransactionStore) FindOwned(ctx context.Context, userID, id string) (*model.Transaction, error) {
	var tx model.Transaction
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *TransactionStore) Update(ctx context.Context, id string, fields map[string]any) (*model.Transaction, error) {
	if err := s.db.WithContext(ctx).Model(&model.Transaction{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}

	var tx model.Transaction
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Transaction{}).Error
}

// ListByUser returns the user's transactions sorted by date descending.
func (s *TransactionStore) ListByUser(ctx context.Context, userID string) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}
