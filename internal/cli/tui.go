// internal/cli/tui.go
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/sudokubench/internal/sudoku"
)

// viewState represents the current state of the application's view.
type viewState int

const (
	// viewMethodSelector is the state where the user picks CBT or ILS.
	viewMethodSelector viewState = iota
	// viewPuzzleInput is the state where the user pastes a puzzle string.
	viewPuzzleInput
	// viewSolving is the state while the solver runs.
	viewSolving
	// viewResult shows the puzzle next to its solution.
	viewResult
)

var methodDescriptions = map[string]string{
	sudoku.MethodCBT: "Chronological backtracking with forward checking",
	sudoku.MethodILS: "Iterated local search over block swaps",
}

// model is the Bubble Tea model of the interactive solve mode.
type model struct {
	config SolveConfig
	state  viewState
	// inputErr is shown under the puzzle input.
	inputErr error

	methodList list.Model
	textArea   textarea.Model
	spinner    spinner.Model

	method string
	// solveID tags each solve so results of an abandoned solve are dropped.
	solveID int
	cancel  context.CancelFunc

	puzzle *sudoku.Board
	solved *sudoku.Board
	result sudoku.Result

	width, height    int
	requestStartTime time.Time
}

// initialModel sets up the list, textarea and spinner components.
func initialModel(cfg SolveConfig) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
	ta.Prompt = "┃ "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	items := make([]list.Item, len(sudoku.Methods))
	for i, name := range sudoku.Methods {
		items[i] = item{title: name, desc: methodDescriptions[name]}
	}
	methods := list.New(items, list.NewDefaultDelegate(), 0, 0)
	methods.Title = "What solving method do you want to use?"
	methods.SetFilteringEnabled(false)
	methods.SetShowStatusBar(false)

	return &model{
		config:     cfg,
		state:      viewMethodSelector,
		spinner:    s,
		textArea:   ta,
		methodList: methods,
	}
}

// item represents a selectable solving method.
type item struct {
	title string
	desc  string
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the description of the list item.
func (i item) Description() string { return i.desc }

// FilterValue returns the title of the item, used for filtering in the list.
func (i item) FilterValue() string { return i.title }

// solvedMsg is sent when a solve finished.
type solvedMsg struct {
	id     int
	solved *sudoku.Board
	result sudoku.Result
}

// solveErrMsg is sent when a solve failed or was cancelled.
type solveErrMsg struct {
	id  int
	err error
}

// tickMsg drives the elapsed timer while solving.
type tickMsg time.Time

// solveCmd runs the solver off the UI goroutine.
func solveCmd(ctx context.Context, id int, method string, puzzle *sudoku.Board, cfg SolveConfig) tea.Cmd {
	return func() tea.Msg {
		solved, res, err := solve(ctx, method, puzzle, cfg)
		if err != nil {
			return solveErrMsg{id: id, err: err}
		}
		return solvedMsg{id: id, solved: solved, result: res}
	}
}

// tickCmd returns a command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages and updates the state accordingly.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stopSolve()
			return m, tea.Quit
		case "q":
			if m.state != viewPuzzleInput {
				m.stopSolve()
				return m, tea.Quit
			}
		case "esc":
			switch m.state {
			case viewPuzzleInput:
				m.state = viewMethodSelector
				m.inputErr = nil
				return m, nil
			case viewSolving:
				m.stopSolve()
				m.state = viewPuzzleInput
				m.textArea.Focus()
				return m, nil
			case viewResult:
				m.state = viewMethodSelector
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.methodList.SetSize(msg.Width-4, msg.Height-4)
		m.textArea.SetWidth(min(msg.Width-4, 90))

	case solvedMsg:
		if msg.id != m.solveID || m.state != viewSolving {
			return m, nil
		}
		m.stopSolve()
		m.solved = msg.solved
		m.result = msg.result
		m.state = viewResult
		return m, nil

	case solveErrMsg:
		if msg.id != m.solveID || m.state != viewSolving {
			return m, nil
		}
		m.stopSolve()
		m.inputErr = msg.err
		m.state = viewPuzzleInput
		m.textArea.Focus()
		return m, nil

	case tickMsg:
		if m.state == viewSolving {
			return m, tickCmd()
		}
		return m, nil
	}

	switch m.state {
	case viewMethodSelector:
		m.methodList, cmd = m.methodList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selected, ok := m.methodList.SelectedItem().(item); ok {
				m.method = selected.Title()
				m.state = viewPuzzleInput
				m.inputErr = nil
				cmds = append(cmds, m.textArea.Focus())
			}
		}

	case viewPuzzleInput:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			cmds = append(cmds, m.submitPuzzle())
			break
		}
		m.textArea, cmd = m.textArea.Update(msg)
		cmds = append(cmds, cmd)

	case viewSolving:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case viewResult:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			m.state = viewPuzzleInput
			m.textArea.Reset()
			cmds = append(cmds, m.textArea.Focus())
		}
	}

	return m, tea.Batch(cmds...)
}

// submitPuzzle parses the input and starts a solve when it is valid.
func (m *model) submitPuzzle() tea.Cmd {
	input := strings.Join(strings.Fields(m.textArea.Value()), "")
	if input == "" {
		return nil
	}
	b, err := sudoku.Parse(input)
	if err != nil {
		m.inputErr = err
		return nil
	}

	m.stopSolve()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.solveID++
	m.puzzle = b
	m.solved = nil
	m.inputErr = nil
	m.state = viewSolving
	m.requestStartTime = time.Now()
	m.textArea.Blur()
	return tea.Batch(m.spinner.Tick, solveCmd(ctx, m.solveID, m.method, b, m.config), tickCmd())
}

func (m *model) stopSolve() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

var (
	headerStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	givenStyle  = lipgloss.NewStyle().Bold(true)
	filledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	emptyStyle  = lipgloss.NewStyle().Faint(true)
)

// View renders the UI based on the current state.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.state {
	case viewMethodSelector:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.methodList.View())

	case viewPuzzleInput:
		return m.inputView()

	case viewSolving:
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		return fmt.Sprintf("\n  %s Solving sudoku with %s... %ss\n\n  %s\n",
			m.spinner.View(), m.method, timer, helpStyle.Render("esc to cancel"))

	case viewResult:
		return m.resultView()

	default:
		return "Unknown state"
	}
}

func (m *model) inputView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Method: "+m.method) + "\n\n")
	b.WriteString("Paste a single-line sudoku (81 digits with '.' or '0' for empty squares,\nor 81 semicolon-separated values). The puzzle must be solvable.\n\n")
	b.WriteString(m.textArea.View() + "\n")
	if m.inputErr != nil {
		b.WriteString("\n" + errorStyle.Render(m.inputErr.Error()) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter to solve · esc to change method · ctrl+c to quit"))
	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}

func (m *model) resultView() string {
	left := boardStyle.Render(headerStyle.Render("Puzzle") + "\n\n" + renderBoard(m.puzzle, m.puzzle))
	right := boardStyle.Render(headerStyle.Render("Solved ("+m.method+")") + "\n\n" + renderBoard(m.solved, m.puzzle))
	grids := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	stats := fmt.Sprintf("sudoku solved in %dms · %d iterations", m.result.Millis(), m.result.Iterations)
	help := helpStyle.Render("enter to solve another · esc to change method · q to quit")
	return lipgloss.NewStyle().Margin(1, 2).Render(grids + "\n\n" + stats + "\n" + help)
}

// renderBoard draws b with block separators; givens of puzzle are bold.
func renderBoard(b, puzzle *sudoku.Board) string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	for r := 0; r < sudoku.Size; r++ {
		if r == 3 || r == 6 {
			sb.WriteString(helpStyle.Render("------+-------+------") + "\n")
		}
		for c := 0; c < sudoku.Size; c++ {
			if c == 3 || c == 6 {
				sb.WriteString(helpStyle.Render("| "))
			}
			v := b.Value(r, c)
			switch {
			case v == 0:
				sb.WriteString(emptyStyle.Render("."))
			case puzzle.Fixed(r, c):
				sb.WriteString(givenStyle.Render(fmt.Sprint(v)))
			default:
				sb.WriteString(filledStyle.Render(fmt.Sprint(v)))
			}
			if c < sudoku.Size-1 {
				sb.WriteByte(' ')
			}
		}
		if r < sudoku.Size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// StartGUI runs the interactive solve TUI and blocks until it exits. With
// cfg.Debug set, Bubble Tea diagnostics are written to debug.log.
func StartGUI(cfg SolveConfig) error {
	if cfg.Debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		defer f.Close()
	}

	m := initialModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.stopSolve()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
