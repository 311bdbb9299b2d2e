package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type distinguishes where submitted funds are headed.
type Type string

const (
	TypeInvestmentDeposit Type = "investment deposit"
	TypeCopytradeDeposit  Type = "copytrade deposit"
	TypeWithdrawal        Type = "withdrawal"
)

// Status is the approval state of a transaction. New submissions are
// pending until an admin approves or declines them.
type Status string

const (
	StatusPending  Status = "pending"
	StatusSuccess  Status = "success"
	StatusDeclined Status = "declined"
)

// Owner is the slim account summary embedded in admin listings.
type Owner struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Transaction is a deposit or withdrawal as returned by the API.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	Reference      string          `json:"reference"`
	Type           Type            `json:"type"`
	Status         Status          `json:"status"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentChannel string          `json:"paymentChannel"`
	Receipt        string          `json:"receipt,omitempty"`
	User           *Owner          `json:"user,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
}

func (t *Transaction) RecordID() uuid.UUID { return t.ID }

func (t *Transaction) StatusValue() string { return string(t.Status) }

func (t *Transaction) TypeValue() string { return string(t.Type) }

func (t *Transaction) CreatedTime() time.Time { return t.CreatedAt }

func (t *Transaction) SearchFields() []string {
	name := ""
	if t.User != nil {
		name = t.User.Name
	}

	return []string{t.Reference, name, t.Amount.String()}
}
