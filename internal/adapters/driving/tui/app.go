// Package tui provides the full-screen chat interface, following the
// Elm architecture on top of Bubbletea.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mapleline/policyscan/internal/core/ports/driving"
	"github.com/mapleline/policyscan/internal/core/services"
)

// exchange is one question/answer pair in the transcript.
type exchange struct {
	question string
	answer   string
	err      error
}

// answerMsg carries the assistant's reply back into the update loop.
type answerMsg struct {
	answer string
	err    error
}

// App is the chat TUI model. It implements tea.Model.
type App struct {
	chat driving.ChatService
	ctx  context.Context

	styles   *Styles
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript []exchange
	waiting    bool

	width  int
	height int
	ready  bool
}

// NewApp creates the chat application around a chat service.
func NewApp(chat driving.ChatService) *App {
	styles := NewStyles(DefaultTheme())

	input := textinput.New()
	input.Placeholder = "Ask about Canadian party policy..."
	input.CharLimit = 500
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Muted

	return &App{
		chat:    chat,
		ctx:     context.Background(),
		styles:  styles,
		input:   input,
		spinner: spin,
	}
}

// WithContext sets the context used for chat calls.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			if a.waiting {
				return a, nil
			}
			question := strings.TrimSpace(a.input.Value())
			if question == "" {
				return a, nil
			}
			a.input.Reset()
			a.waiting = true
			a.transcript = append(a.transcript, exchange{question: question})
			a.refreshViewport()
			return a, tea.Batch(a.ask(question), a.spinner.Tick)
		}

	case answerMsg:
		a.waiting = false
		last := len(a.transcript) - 1
		if last >= 0 {
			a.transcript[last].answer = msg.answer
			a.transcript[last].err = msg.err
		}
		a.refreshViewport()
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Policyscan"))
	b.WriteString(a.styles.Muted.Render("  esc to quit"))
	b.WriteString("\n\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.styles.Input.Width(a.width - 4).Render(a.input.View()))
	return b.String()
}

// ask issues the chat call off the update loop.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.chat.Ask(a.ctx, question, services.HintsFromQuestion(question))
		return answerMsg{answer: answer, err: err}
	}
}

func (a *App) layout() {
	inputHeight := 3
	headerHeight := 2
	vpHeight := a.height - inputHeight - headerHeight - 1
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !a.ready {
		a.viewport = viewport.New(a.width, vpHeight)
		a.ready = true
	} else {
		a.viewport.Width = a.width
		a.viewport.Height = vpHeight
	}
	a.refreshViewport()
}

// refreshViewport re-renders the transcript and keeps the latest
// exchange in view.
func (a *App) refreshViewport() {
	if !a.ready {
		return
	}

	width := a.width - 2
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	for i, ex := range a.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(a.styles.Question.Render("You: "))
		b.WriteString(wrap(ex.question, width))
		b.WriteString("\n\n")
		switch {
		case ex.err != nil:
			b.WriteString(a.styles.Error.Render("Error: " + ex.err.Error()))
		case ex.answer == "":
			b.WriteString(a.spinner.View())
			b.WriteString(a.styles.Muted.Render(" thinking..."))
		default:
			b.WriteString(a.styles.Answer.Render(wrap(ex.answer, width)))
		}
	}

	a.viewport.SetContent(b.String())
	a.viewport.GotoBottom()
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}
