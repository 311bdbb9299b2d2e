package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markoswell/optivest/internal/investment"
	"github.com/markoswell/optivest/internal/transaction"
	"github.com/markoswell/optivest/internal/user"
)

type DashboardModel struct {
	CommonModel
	userService *user.Service
	txService   *transaction.Service
	invService  *investment.Service

	me     *user.User
	recent []*transaction.Transaction

	loading bool
	err     error
}

func NewDashboardModel(userSvc *user.Service, txSvc *transaction.Service, invSvc *investment.Service) DashboardModel {
	return DashboardModel{
		userService: userSvc,
		txService:   txSvc,
		invService:  invSvc,
		loading:     true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}

	case dashboardMsg:
		m.loading = false
		m.me = msg.me
		m.recent = msg.recent
		m.err = msg.err
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	wallet := m.me.Wallet
	balances := lipgloss.JoinHorizontal(lipgloss.Top,
		balancePanel("Investment Balance", FormatMoney(wallet.Balance)),
		balancePanel("Copytrade Balance", FormatMoney(wallet.CopytradeBalance)),
		balancePanel("Referral Earnings", FormatMoney(wallet.ReferralBalance)),
		balancePanel("Profit", FormatMoney(wallet.Profit)),
	)

	activity := "Recent Activity\n\n"
	if len(m.recent) == 0 {
		activity += faintStyle("No transactions yet.")
	}

	for _, tx := range m.recent {
		activity += fmt.Sprintf("%s  %-20s %-10s %s\n",
			FormatDate(tx.CreatedAt), tx.Type, tx.Status, FormatMoney(tx.Amount))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Welcome back, %s\n", m.me.Name()),
		balances,
		"",
		activity,
		faintStyle(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func balancePanel(title, value string) string {
	return lipgloss.NewStyle().
		Padding(0, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(faintStyle(title) + "\n" + value)
}

type dashboardMsg struct {
	me     *user.User
	recent []*transaction.Transaction
	err    error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		// Settle any accrual due before reading balances.
		if err := m.invService.Refresh(ctx); err != nil {
			return dashboardMsg{err: err}
		}

		me, err := m.userService.Me(ctx)
		if err != nil {
			return dashboardMsg{err: err}
		}

		recent, err := m.txService.Recent(ctx)

		return dashboardMsg{me: me, recent: recent, err: err}
	}
}
