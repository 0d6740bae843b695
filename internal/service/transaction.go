package service

import (
	"context"
	"time"

	"walle.finance/internal/domain"
	"walle.finance/internal/model"
	"walle.finance/internal/store"
)

// TransactionServiceImpl implements domain.TransactionService. Every
// mutation confirms ownership before touching the record.
type TransactionServiceImpl struct {
	transactions *store.TransactionStore
}

func NewTransactionService(transactions *store.TransactionStore) *TransactionServiceImpl {
	return &TransactionServiceImpl{transactions: transactions}
}

func (s *TransactionServiceImpl) Create(ctx context.Context, userID string, in domain.CreateTransactionInput) (*model.Transaction, error) {
	switch {
	case in.Type == "":
		return nil, domain.NewValidationError("MISSING_TYPE", "Transaction type is required.")
	case in.Amount == nil:
		return nil, domain.NewValidationError("MISSING_AMOUNT", "Transaction amount is required.")
	case in.Category == "":
		return nil, domain.NewValidationError("MISSING_CATEGORY", "Transaction category is required.")
	}

	date := in.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	tx := &model.Transaction{
		UserID:      userID,
		Type:        in.Type,
		Amount:      *in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        date,
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, domain.NewInternalError("Error creating transaction.", err)
	}

	logger.Info().Str("user_id", userID).Str("transaction_id", tx.ID).Msg("transaction created")
	return tx, nil
}

func (s *TransactionServiceImpl) Update(ctx context.Context, userID, id string, in domain.UpdateTransactionInput) (*model.Transaction, error) {
	if id == "" {
		return nil, domain.NewValidationError("MISSING_ID", "Transaction ID is required.")
	}

	owned, err := s.transactions.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, domain.NewInternalError("Error updating transaction.", err)
	}
	if owned == nil {
		return nil, domain.NewNotFoundError("TRANSACTION_NOT_FOUND", "Transaction not found.")
	}

	fields := map[string]any{}
	if in.Type != "" {
		fields["type"] = in.Type
	}
	if in.Amount != nil {
		fields["amount"] = *in.Amount
	}
	if in.Category != "" {
		fields["category"] = in.Category
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Date != "" {
		fields["date"] = in.Date
	}

	if len(fields) == 0 {
		return owned, nil
	}

	updated, err := s.transactions.Update(ctx, id, fields)
	if err != nil {
		return nil, domain.NewInternalError("Error updating transaction.", err)
	}
	return updated, nil
}

func (s *TransactionServiceImpl) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return domain.NewValidationError("MISSING_ID", "Transaction ID is required.")
	}

	owned, err := s.transactions.FindOwned(ctx, userID, id)
	if err != nil {
		return domain.NewInternalError("Error deleting transaction.", err)
	}
	if owned == nil {
		return domain.NewNotFoundError("TRANSACTION_NOT_FOUND", "Transaction not found.")
	}

	if err := s.transactions.Delete(ctx, id); err != nil {
		return domain.NewInternalError("Error deleting transaction.", err)
	}

	logger.Info().Str("user_id", userID).Str("transaction_id", id).Msg("transaction deleted")
	return nil
}

func (s *TransactionServiceImpl) ListByUser(ctx context.Context, userID string) ([]model.Transaction, error) {
	txs, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Error retrieving transactions.", err)
	}
	return txs, nil
}
