package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"walle.finance/internal/domain"
	"walle.finance/internal/store"
)

func newTransactionFixture(t *testing.T) *TransactionServiceImpl {
	t.Helper()
	return NewTransactionService(store.NewTransactionStore(newTestDB(t)))
}

func amount(v float64) *float64 { return &v }

func TestTransactionCreate(t *testing.T) {
	t.Parallel()

	svc := newTransactionFixture(t)
	ctx := context.Background()

	tx, err := svc.Create(ctx, "owner-1", domain.CreateTransactionInput{
		Type:     "expense",
		Amount:   amount(42.5),
		Category: "groceries",
	})
	require.NoError(t, err)

	require.NotEmpty(t, tx.ID)
	require.Equal(t, "owner-1", tx.UserID)
	require.Equal(t, 42.5, tx.Amount)
	require.Empty(t, tx.Description)
	require.Equal(t, time.Now().Format("2006-01-02"), tx.Date, "date defaults to today")
}

func TestTransactionCreate_Validation(t *testing.T) {
	t.Parallel()

	svc := newTransactionFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u", domain.CreateTransactionInput{Amount: amount(1), Category: "c"})
	requireAppError(t, err, "MISSING_TYPE", fiber.StatusBadRequest)

	_, err = svc.Create(ctx, "u", domain.CreateTransactionInput{Type: "income", Category: "c"})
	requireAppError(t, err, "MISSING_AMOUNT", fiber.StatusBadRequest)

	_, err = svc.Create(ctx, "u", domain.CreateTransactionInput{Type: "income", Amount: amount(1)})
	requireAppError(t, err, "MISSING_CATEGORY", fiber.StatusBadRequest)
}

func TestTransactionUpdate_PartialFields(t *testing.T) {
	t.Parallel()

	svc := newTransactionFixture(t)
	ctx := context.Background()

	tx, err := svc.Create(ctx, "owner-1", domain.CreateTransactionInput{
		Type:        "expense",
		Amount:      amount(10),
		Category:    "groceries",
		Description: "weekly shop",
		Date:        "2026-08-01",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "owner-1", tx.ID, domain.UpdateTransactionInput{
		Amount: amount(12),
	})
	require.NoError(t, err)

	require.Equal(t, 12.0, updated.Amount)
	require.Equal(t, "expense", updated.Type)
	require.Equal(t, "groceries", updated.Category)
	require.Equal(t, "weekly shop", updated.Description)
	require.Equal(t, "2026-08-01", updated.Date)
}

func TestTransactionMutation_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	svc := newTransactionFixture(t)
	ctx := context.Background()

	tx, err := svc.Create(ctx, "owner-1", domain.CreateTransactionInput{
		Type: "income", Amount: amount(100), Category: "salary",
	})
	require.NoError(t, err)

	// another user cannot see, edit or delete the record
	_, err = svc.Update(ctx, "intruder", tx.ID, domain.UpdateTransactionInput{Amount: amount(0)})
	requireAppError(t, err, "TRANSACTION_NOT_FOUND", fiber.StatusNotFound)

	err = svc.Delete(ctx, "intruder", tx.ID)
	requireAppError(t, err, "TRANSACTION_NOT_FOUND", fiber.StatusNotFound)

	// untouched
	list, err := svc.ListByUser(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 100.0, list[0].Amount)

	require.NoError(t, svc.Delete(ctx, "owner-1", tx.ID))

	list, err = svc.ListByUser(ctx, "owner-1")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestTransactionList_SortedByDateDescending(t *testing.T) {
	t.Parallel()

	svc := newTransactionFixture(t)
	ctx := context.Background()

	for _, date := range []string{"2026-01-15", "2026-03-01", "2026-02-10"} {
		_, err := svc.Create(ctx, "owner-1", domain.CreateTransactionInput{
			Type: "expense", Amount: amount(1), Category: "misc", Date: date,
		})
		require.NoError(t, err)
	}

	list, err := svc.ListByUser(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "2026-03-01", list[0].Date)
	require.Equal(t, "2026-02-10", list[1].Date)
	require.Equal(t, "2026-01-15", list[2].Date)
}
