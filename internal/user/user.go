package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role gates access to the admin back office.
type Role string

const (
	RoleInvestor Role = "user"
	RoleAdmin    Role = "admin"
)

// Status is the lifecycle state of a platform account.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "deactivated"
)

// Wallet holds the three balances an account accrues.
type Wallet struct {
	Balance          decimal.Decimal `json:"balance"`
	CopytradeBalance decimal.Decimal `json:"copytradeBalance"`
	ReferralBalance  decimal.Decimal `json:"referralBalance"`
	Profit           decimal.Decimal `json:"profit"`
}

// User is a platform account as returned by the API.
type User struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Country   string     `json:"country"`
	Status    Status     `json:"status"`
	Role      Role       `json:"role"`
	Wallet    Wallet     `json:"wallet"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Name returns the display name, tolerating missing parts.
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) RecordID() uuid.UUID { return u.ID }

func (u *User) StatusValue() string { return string(u.Status) }

func (u *User) TypeValue() string { return "" }

func (u *User) CreatedTime() time.Time { return u.CreatedAt }

func (u *User) SearchFields() []string {
	return []string{u.Name(), u.Email, u.Phone}
}

// BankAccount is a saved withdrawal destination. Bank transfers carry
// account details, crypto destinations a wallet address.
type BankAccount struct {
	ID            uuid.UUID `json:"id"`
	BankName      string    `json:"bankName"`
	AccountName   string    `json:"accountName"`
	AccountNumber string    `json:"accountNumber"`
	WalletAddress string    `json:"walletAddress"`
	Network       string    `json:"network"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (b *BankAccount) RecordID() uuid.UUID { return b.ID }

// Label is the one-line summary shown when picking a destination.
func (b *BankAccount) Label() string {
	if b.WalletAddress != "" {
		return b.Network + " " + b.WalletAddress
	}

	return b.BankName + " " + b.AccountNumber
}
