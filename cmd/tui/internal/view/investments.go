package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markoswell/optivest/internal/collection"
	"github.com/markoswell/optivest/internal/investment"
)

type portfolioTab int

const (
	portfolioTabPlans portfolioTab = iota
	portfolioTabFollows
)

// PortfolioModel shows running investments and copy-trade positions.
// Admins see the whole platform and can stop active follows.
type PortfolioModel struct {
	CommonModel
	invService *investment.Service
	admin      bool

	tab     portfolioTab
	bar     progress.Model
	cursor  int
	invs    []*investment.Investment
	follows []*investment.CopyFollow

	loading bool
	err     error
	status  string
}

func NewPortfolioModel(invSvc *investment.Service, admin bool) PortfolioModel {
	return PortfolioModel{
		invService: invSvc,
		admin:      admin,
		bar:        progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		loading:    true,
	}
}

func (m PortfolioModel) Title() string { return "Portfolio" }
func (m PortfolioModel) ShortHelp() string {
	help := "Esc: back | tab: switch | ↑/↓: move | r: refresh"
	if m.admin && m.tab == portfolioTabFollows {
		help += " | x: stop follow"
	}

	return help
}

func (m PortfolioModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PortfolioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case portfolioMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.invs = msg.invs
		m.follows = msg.follows
		m.status = ""

		return m, nil

	case stopFollowMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.follows = collection.Reconcile(m.follows, collection.MutationUpdate, msg.follow)
		m.status = "Copy trade stopped."

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "tab":
			if m.tab == portfolioTabPlans {
				m.tab = portfolioTabFollows
			} else {
				m.tab = portfolioTabPlans
			}

			m.cursor = 0
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}
		case "x":
			if m.admin && m.tab == portfolioTabFollows {
				return m, m.stopFollowCmd()
			}
		}
	}

	return m, nil
}

func (m PortfolioModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading portfolio...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	var tabs string
	if m.tab == portfolioTabPlans {
		tabs = activeStyle("Plan Investments") + " | Copy Trades"
	} else {
		tabs = "Plan Investments | " + activeStyle("Copy Trades")
	}

	var body string
	if m.tab == portfolioTabPlans {
		body = m.renderInvestments()
	} else {
		body = m.renderFollows()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		"",
		body,
		faintStyle(m.ShortHelp()),
	)

	if m.status != "" {
		content = faintStyle(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m PortfolioModel) renderInvestments() string {
	if len(m.invs) == 0 {
		return faintStyle("No investments yet.") + "\n"
	}

	now := time.Now()

	var b strings.Builder
	for i, inv := range m.invs {
		name := ""
		if inv.Plan != nil {
			name = inv.Plan.Name
		}

		line := fmt.Sprintf("%-14s %-10s %-10s matures %s",
			name, FormatMoney(inv.Amount), inv.Status, FormatDate(inv.ExpiryDate))

		if m.admin && inv.User != nil {
			line += " | " + inv.User.Name
		}

		b.WriteString(choiceLine(line, i == m.cursor))
		b.WriteString("  " + m.bar.ViewAs(inv.Progress(now)/100) + "\n")
	}

	return b.String()
}

func (m PortfolioModel) renderFollows() string {
	if len(m.follows) == 0 {
		return faintStyle("No copy trades yet.") + "\n"
	}

	now := time.Now()

	var b strings.Builder
	for i, f := range m.follows {
		name := ""
		if f.Trade != nil {
			name = f.Trade.TradeName
		}

		line := fmt.Sprintf("%-16s %-10s %-10s", name, FormatMoney(f.Amount), f.Status)

		if m.admin && f.User != nil {
			line += " | " + f.User.Name
		}

		b.WriteString(choiceLine(line, i == m.cursor))
		b.WriteString("  " + m.bar.ViewAs(f.Progress(now)/100) + "\n")
	}

	return b.String()
}

func (m PortfolioModel) rowCount() int {
	if m.tab == portfolioTabPlans {
		return len(m.invs)
	}

	return len(m.follows)
}

type portfolioMsg struct {
	invs    []*investment.Investment
	follows []*investment.CopyFollow
	err     error
}

func (m PortfolioModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		var (
			invs    []*investment.Investment
			follows []*investment.CopyFollow
			err     error
		)

		if m.admin {
			invs, err = m.invService.ListAll(ctx)
		} else {
			invs, err = m.invService.ListMine(ctx)
		}
		if err != nil {
			return portfolioMsg{err: err}
		}

		if m.admin {
			follows, err = m.invService.ListAllFollows(ctx)
		} else {
			follows, err = m.invService.ListMineFollows(ctx)
		}

		return portfolioMsg{invs: invs, follows: follows, err: err}
	}
}

type stopFollowMsg struct {
	follow *investment.CopyFollow
	err    error
}

func (m PortfolioModel) stopFollowCmd() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.follows) {
		return nil
	}

	target := m.follows[m.cursor]
	if target.Status != investment.StatusActive {
		return func() tea.Msg {
			return stopFollowMsg{err: fmt.Errorf("this copy trade is not active")}
		}
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		follow, err := m.invService.StopFollow(ctx, target.ID)

		return stopFollowMsg{follow: follow, err: err}
	}
}
