package investment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markoswell/optivest/internal/copytrade"
	"github.com/markoswell/optivest/internal/plan"
)

// Status is the lifecycle state of an investment.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusStopped   Status = "stopped"
)

// Investment is money committed to a plan, accruing until expiry.
type Investment struct {
	ID         uuid.UUID       `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     Status          `json:"status"`
	Plan       *plan.Plan      `json:"plan,omitempty"`
	User       *OwnerRef       `json:"user,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	ExpiryDate time.Time       `json:"expiryDate"`
}

// OwnerRef is the slim account summary embedded in admin listings.
type OwnerRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (i *Investment) RecordID() uuid.UUID { return i.ID }

func (i *Investment) StatusValue() string { return string(i.Status) }

func (i *Investment) TypeValue() string { return "" }

func (i *Investment) CreatedTime() time.Time { return i.CreatedAt }

func (i *Investment) SearchFields() []string {
	name := ""
	if i.Plan != nil {
		name = i.Plan.Name
	}

	owner := ""
	if i.User != nil {
		owner = i.User.Name
	}

	return []string{name, owner, i.Amount.String()}
}

// Progress reports how far through its term the investment is at now,
// as a percentage clamped to [0, 100]. Records without a usable term
// report 0.
func (i *Investment) Progress(now time.Time) float64 {
	return progress(i.CreatedAt, i.ExpiryDate, now)
}

// CopyFollow is money committed to mirroring a trader.
type CopyFollow struct {
	ID         uuid.UUID         `json:"id"`
	Amount     decimal.Decimal   `json:"amount"`
	Status     Status            `json:"status"`
	Trade      *copytrade.Trader `json:"trade,omitempty"`
	User       *OwnerRef         `json:"user,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	ExpiryDate time.Time         `json:"expiryDate"`
}

func (f *CopyFollow) RecordID() uuid.UUID { return f.ID }

func (f *CopyFollow) StatusValue() string { return string(f.Status) }

func (f *CopyFollow) TypeValue() string { return "" }

func (f *CopyFollow) CreatedTime() time.Time { return f.CreatedAt }

func (f *CopyFollow) SearchFields() []string {
	name := ""
	if f.Trade != nil {
		name = f.Trade.TradeName
	}

	owner := ""
	if f.User != nil {
		owner = f.User.Name
	}

	return []string{name, owner, f.Amount.String()}
}

// Progress reports how far through its term the follow is at now.
func (f *CopyFollow) Progress(now time.Time) float64 {
	return progress(f.CreatedAt, f.ExpiryDate, now)
}

func progress(start, end, now time.Time) float64 {
	if end.IsZero() || !end.After(start) {
		return 0
	}

	elapsed := now.Sub(start).Seconds()
	total := end.Sub(start).Seconds()

	pct := elapsed / total * 100
	if pct < 0 {
		return 0
	}

	if pct > 100 {
		return 100
	}

	return pct
}
