package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markoswell/optivest/internal/collection"
	"github.com/markoswell/optivest/internal/filter"
	"github.com/markoswell/optivest/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateSearch
)

var (
	txStatusCycle = []string{filter.All, string(transaction.StatusPending), string(transaction.StatusSuccess), string(transaction.StatusDeclined)}
	txTypeCycle   = []string{filter.All, string(transaction.TypeInvestmentDeposit), string(transaction.TypeCopytradeDeposit), string(transaction.TypeWithdrawal)}
	txDateCycle   = []filter.DateRange{filter.DateRangeAll, filter.DateRangeToday, filter.DateRangeWeek, filter.DateRangeMonth}
)

// TransactionsModel lists transactions. Admins see the whole platform
// and can approve or decline pending entries.
type TransactionsModel struct {
	CommonModel
	txService *transaction.Service
	admin     bool

	state   txState
	table   table.Model
	search  textinput.Model
	txs     []*transaction.Transaction
	visible []*transaction.Transaction

	statusIdx int
	typeIdx   int
	dateIdx   int

	criteria filter.Criteria
	loading  bool
	busy     bool
	err      error
	status   string
}

func NewTransactionsModel(txSvc *transaction.Service, admin bool) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Reference", Width: 16},
		{Title: "Type", Width: 20},
		{Title: "Status", Width: 10},
		{Title: "Amount", Width: 12},
	}

	if admin {
		columns = append(columns, table.Column{Title: "Account", Width: 24})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "reference, name or amount"
	search.Width = 40

	return TransactionsModel{
		txService: txSvc,
		admin:     admin,
		table:     t,
		search:    search,
		loading:   true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }
func (m TransactionsModel) ShortHelp() string {
	if m.state == txStateSearch {
		return "Enter: apply | Esc: cancel"
	}

	help := "Esc: back | s: status | t: type | d: date | /: search | r: refresh"
	if m.admin {
		help += " | a: approve | x: decline"
	}

	return help
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.txs = msg.txs
		m.status = ""
		m.refreshTable()

		return m, nil

	case txActionMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = collection.Reconcile(m.txs, collection.MutationUpdate, msg.tx)
		m.status = fmt.Sprintf("Transaction %s is now %s", msg.tx.Reference, msg.tx.Status)
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateSearch:
		return m.updateSearch(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(txStatusCycle)
			m.criteria.Status = txStatusCycle[m.statusIdx]
			m.refreshTable()

			return m, nil
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(txTypeCycle)
			m.criteria.Type = txTypeCycle[m.typeIdx]
			m.refreshTable()

			return m, nil
		case "d":
			m.dateIdx = (m.dateIdx + 1) % len(txDateCycle)
			m.criteria.DateRange = txDateCycle[m.dateIdx]
			m.refreshTable()

			return m, nil
		case "/":
			m.state = txStateSearch
			m.table.Blur()
			m.search.Focus()

			return m, textinput.Blink
		case "a":
			if m.admin && !m.busy {
				if cmd := m.actionCmd(true); cmd != nil {
					m.busy = true
					return m, cmd
				}
			}
		case "x":
			if m.admin && !m.busy {
				if cmd := m.actionCmd(false); cmd != nil {
					m.busy = true
					return m, cmd
				}
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.search.SetValue("")
			m.criteria.Search = ""
			m.state = txStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		case "enter":
			m.criteria.Search = m.search.Value()
			m.state = txStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	header := fmt.Sprintf(
		"[s] Status: %s | [t] Type: %s | [d] Date: %s",
		activeStyle(cycleLabel(m.criteria.Status)),
		activeStyle(cycleLabel(m.criteria.Type)),
		activeStyle(m.criteria.DateRange.String()),
	)

	if m.state == txStateSearch {
		header += "\nSearch: " + m.search.View()
	} else if m.criteria.Search != "" {
		header += fmt.Sprintf(" | Search: %s", activeStyle(m.criteria.Search))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle(m.ShortHelp()),
	)

	if m.busy {
		content = faintStyle("Processing...") + "\n" + content
	} else if m.status != "" {
		content = faintStyle(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func cycleLabel(v string) string {
	if v == "" || v == filter.All {
		return "All"
	}

	return v
}

func (m *TransactionsModel) refreshTable() {
	m.visible = filter.Apply(m.txs, m.criteria, time.Now())

	rows := make([]table.Row, 0, len(m.visible))
	for _, tx := range m.visible {
		row := table.Row{
			FormatDate(tx.CreatedAt),
			tx.Reference,
			string(tx.Type),
			string(tx.Status),
			FormatMoney(tx.Amount),
		}

		if m.admin {
			owner := ""
			if tx.User != nil {
				owner = tx.User.Name
			}

			row = append(row, owner)
		}

		rows = append(rows, row)
	}

	m.table.SetRows(rows)
}

func (m TransactionsModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return m.visible[idx]
}

// Messages

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		if m.admin {
			txs, err := m.txService.ListAll(ctx)
			return loadTxsMsg{txs: txs, err: err}
		}

		txs, err := m.txService.ListMine(ctx)

		return loadTxsMsg{txs: txs, err: err}
	}
}

type txActionMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m TransactionsModel) actionCmd(approve bool) tea.Cmd {
	tx := m.selected()
	if tx == nil {
		return nil
	}

	if tx.Status != transaction.StatusPending {
		return func() tea.Msg {
			return txActionMsg{err: fmt.Errorf("%s has already been processed", tx.Reference)}
		}
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		var (
			updated *transaction.Transaction
			err     error
		)

		if approve {
			updated, err = m.txService.Approve(ctx, tx.ID)
		} else {
			updated, err = m.txService.Decline(ctx, tx.ID)
		}

		return txActionMsg{tx: updated, err: err}
	}
}
