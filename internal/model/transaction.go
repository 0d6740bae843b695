package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Transaction is a single income/expense entry owned by one user.
type Transaction struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	UserID      string  `gorm:"index;not null" json:"userId"`
	Type        string  `gorm:"not null" json:"type"` // "income" | "expense"
	Amount      float64 `gorm:"not null" json:"amount"`
	Category    string  `gorm:"not null" json:"category"`
	Description string  `json:"description"`
	// Date is the calendar day of the transaction, stored as YYYY-MM-DD.
	Date      string    `gorm:"not null" json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
