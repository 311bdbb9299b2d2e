package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var apiTimeout = 30 * time.Second

// SetTimeout overrides the per-call deadline used by ApiCtx. Called
// once at startup with the configured client timeout.
func SetTimeout(d time.Duration) {
	if d > 0 {
		apiTimeout = d
	}
}

// FormatMoney renders an amount with two decimal places.
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ApiCtx returns a context with a standard timeout for API calls.
func ApiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}

func faintStyle(s string) string {
	return lipgloss.NewStyle().Faint(true).Render(s)
}
