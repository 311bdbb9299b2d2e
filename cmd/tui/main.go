package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/markoswell/optivest/cmd/tui/internal/view"
	"github.com/markoswell/optivest/internal/api"
	"github.com/markoswell/optivest/internal/auth"
	"github.com/markoswell/optivest/internal/config"
	"github.com/markoswell/optivest/internal/copytrade"
	"github.com/markoswell/optivest/internal/investment"
	"github.com/markoswell/optivest/internal/payoption"
	"github.com/markoswell/optivest/internal/plan"
	"github.com/markoswell/optivest/internal/session"
	"github.com/markoswell/optivest/internal/transaction"
	"github.com/markoswell/optivest/internal/user"
)

type model struct {
	client       *api.Client
	sessionStore *session.Store
	session      *session.Session

	authService *auth.Service
	userService *user.Service
	txService   *transaction.Service
	invService  *investment.Service
	planService *plan.Service
	payService  *payoption.Service
	ctService   *copytrade.Service

	currentView View

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	depositView   view.DepositModel
	withdrawView  view.WithdrawModel
	investView    view.InvestModel
	copyView      view.CopyTradeModel
	portfolioView view.PortfolioModel
	txView        view.TransactionsModel
	profileView   view.ProfileModel
	usersView     view.UsersModel
	plansView     view.PlansModel
	payView       view.PayOptionsModel
	tradersView   view.TradersModel
}

type View int

const (
	ViewLogin View = iota
	ViewMenu
	ViewDashboard
	ViewDeposit
	ViewWithdraw
	ViewInvest
	ViewCopyTrade
	ViewPortfolio
	ViewTransactions
	ViewProfile
	ViewUsers
	ViewPlans
	ViewPayOptions
	ViewTraders
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sessionPath, err := cfg.SessionPath()
	if err != nil {
		slog.Error("failed to resolve session path", "error", err)
		os.Exit(1)
	}

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout)
	store := session.NewStore(sessionPath)
	view.SetTimeout(cfg.API.Timeout)

	m := model{
		client:       client,
		sessionStore: store,
		authService:  auth.NewService(client),
		userService:  user.NewService(client),
		txService:    transaction.NewService(client),
		invService:   investment.NewService(client),
		planService:  plan.NewService(client),
		payService:   payoption.NewService(client),
		ctService:    copytrade.NewService(client),
		currentView:  ViewLogin,
	}

	m.loginView = view.NewLoginModel(m.authService)

	sess, err := store.Load()
	if err != nil && !errors.Is(err, session.ErrNotLoggedIn) {
		slog.Warn("failed to load saved session", "error", err)
	}

	if sess != nil && !sess.Expired(time.Now()) {
		m.session = sess
		m.client.SetToken(sess.Token)
		m.currentView = ViewMenu
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.LoggedInMsg:
		sess := &session.Session{User: msg.User, Token: msg.Token}
		if err := m.sessionStore.Save(sess); err != nil {
			slog.Warn("failed to persist session", "error", err)
		}

		m.session = sess
		m.client.SetToken(msg.Token)
		m.currentView = ViewMenu

		return m, nil

	case view.ProfileUpdatedMsg:
		if m.session != nil {
			m.session.User = msg.User
			if err := m.sessionStore.Save(m.session); err != nil {
				slog.Warn("failed to persist session", "error", err)
			}
		}

		return m, nil

	case view.LogoutMsg:
		return m.logout()

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewDeposit:
		var newModel tea.Model
		newModel, cmd = m.depositView.Update(msg)
		m.depositView = newModel.(view.DepositModel)
	case ViewWithdraw:
		var newModel tea.Model
		newModel, cmd = m.withdrawView.Update(msg)
		m.withdrawView = newModel.(view.WithdrawModel)
	case ViewInvest:
		var newModel tea.Model
		newModel, cmd = m.investView.Update(msg)
		m.investView = newModel.(view.InvestModel)
	case ViewCopyTrade:
		var newModel tea.Model
		newModel, cmd = m.copyView.Update(msg)
		m.copyView = newModel.(view.CopyTradeModel)
	case ViewPortfolio:
		var newModel tea.Model
		newModel, cmd = m.portfolioView.Update(msg)
		m.portfolioView = newModel.(view.PortfolioModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.txView.Update(msg)
		m.txView = newModel.(view.TransactionsModel)
	case ViewProfile:
		var newModel tea.Model
		newModel, cmd = m.profileView.Update(msg)
		m.profileView = newModel.(view.ProfileModel)
	case ViewUsers:
		var newModel tea.Model
		newModel, cmd = m.usersView.Update(msg)
		m.usersView = newModel.(view.UsersModel)
	case ViewPlans:
		var newModel tea.Model
		newModel, cmd = m.plansView.Update(msg)
		m.plansView = newModel.(view.PlansModel)
	case ViewPayOptions:
		var newModel tea.Model
		newModel, cmd = m.payView.Update(msg)
		m.payView = newModel.(view.PayOptionsModel)
	case ViewTraders:
		var newModel tea.Model
		newModel, cmd = m.tradersView.Update(msg)
		m.tradersView = newModel.(view.TradersModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "l":
		return m.logout()
	}

	if m.session.IsAdmin() {
		return m.updateAdminMenu(msg)
	}

	return m.updateInvestorMenu(msg)
}

func (m model) updateInvestorMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		m.currentView = ViewDashboard
		m.dashboardView = view.NewDashboardModel(m.userService, m.txService, m.invService)

		return m, m.dashboardView.Init()
	case "2":
		m.currentView = ViewDeposit
		m.depositView = view.NewDepositModel(m.txService, m.payService)

		return m, m.depositView.Init()
	case "3":
		m.currentView = ViewWithdraw
		m.withdrawView = view.NewWithdrawModel(m.txService, m.userService)

		return m, m.withdrawView.Init()
	case "4":
		m.currentView = ViewInvest
		m.investView = view.NewInvestModel(m.invService, m.planService, m.userService)

		return m, m.investView.Init()
	case "5":
		m.currentView = ViewCopyTrade
		m.copyView = view.NewCopyTradeModel(m.invService, m.ctService, m.userService)

		return m, m.copyView.Init()
	case "6":
		m.currentView = ViewPortfolio
		m.portfolioView = view.NewPortfolioModel(m.invService, false)

		return m, m.portfolioView.Init()
	case "7":
		m.currentView = ViewTransactions
		m.txView = view.NewTransactionsModel(m.txService, false)

		return m, m.txView.Init()
	case "8":
		m.currentView = ViewProfile
		m.profileView = view.NewProfileModel(m.userService)

		return m, m.profileView.Init()
	}

	return m, nil
}

func (m model) updateAdminMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		m.currentView = ViewTransactions
		m.txView = view.NewTransactionsModel(m.txService, true)

		return m, m.txView.Init()
	case "2":
		m.currentView = ViewUsers
		m.usersView = view.NewUsersModel(m.userService)

		return m, m.usersView.Init()
	case "3":
		m.currentView = ViewPortfolio
		m.portfolioView = view.NewPortfolioModel(m.invService, true)

		return m, m.portfolioView.Init()
	case "4":
		m.currentView = ViewPlans
		m.plansView = view.NewPlansModel(m.planService)

		return m, m.plansView.Init()
	case "5":
		m.currentView = ViewPayOptions
		m.payView = view.NewPayOptionsModel(m.payService)

		return m, m.payView.Init()
	case "6":
		m.currentView = ViewTraders
		m.tradersView = view.NewTradersModel(m.ctService)

		return m, m.tradersView.Init()
	}

	return m, nil
}

func (m model) logout() (tea.Model, tea.Cmd) {
	if err := m.sessionStore.Clear(); err != nil {
		slog.Warn("failed to clear session", "error", err)
	}

	m.session = nil
	m.client.SetToken("")
	m.currentView = ViewLogin
	m.loginView = view.NewLoginModel(m.authService)

	return m, m.loginView.Init()
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return m.menuView()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewDeposit:
		return m.depositView.View()
	case ViewWithdraw:
		return m.withdrawView.View()
	case ViewInvest:
		return m.investView.View()
	case ViewCopyTrade:
		return m.copyView.View()
	case ViewPortfolio:
		return m.portfolioView.View()
	case ViewTransactions:
		return m.txView.View()
	case ViewProfile:
		return m.profileView.View()
	case ViewUsers:
		return m.usersView.View()
	case ViewPlans:
		return m.plansView.View()
	case ViewPayOptions:
		return m.payView.View()
	case ViewTraders:
		return m.tradersView.View()
	}

	return "Unknown View"
}

func (m model) menuView() string {
	if m.session.IsAdmin() {
		return lipgloss.NewStyle().Padding(2).Render(
			"Optivest Admin\n\n" +
				"1. Transactions\n" +
				"2. Accounts\n" +
				"3. Portfolio\n" +
				"4. Plans\n" +
				"5. Payment Options\n" +
				"6. Traders\n\n" +
				"l. Logout\n" +
				"q. Quit",
		)
	}

	return lipgloss.NewStyle().Padding(2).Render(
		"Optivest\n\n" +
			"1. Dashboard\n" +
			"2. Deposit\n" +
			"3. Withdraw\n" +
			"4. Invest\n" +
			"5. Copy Trading\n" +
			"6. Portfolio\n" +
			"7. Transactions\n" +
			"8. Profile\n\n" +
			"l. Logout\n" +
			"q. Quit",
	)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
