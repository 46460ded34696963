package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// previewRunes bounds the passage text shown per row in the results list.
const previewRunes = 72

// Mode is the part of the screen that has focus.
type Mode int

const (
	// ModeInput edits the query.
	ModeInput Mode = iota
	// ModeResults navigates the ranked passages.
	ModeResults
	// ModeDetail shows one passage in full.
	ModeDetail
)

// searchCompleted carries the passages for a submitted query.
type searchCompleted struct {
	query    string
	passages []domain.Passage
}

// statsLoaded carries the corpus state for the header line.
type statsLoaded struct {
	stats domain.CorpusStats
	err   error
}

// App is the retrieval inspector following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles Styles
	keys   KeyMap
	input  textinput.Model

	mode     Mode
	query    string
	passages []domain.Passage
	selected int
	searched bool

	stats *domain.CorpusStats
	err   error

	width  int
	height int
	ready  bool
}

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrMissingSearchService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Ask the knowledge base..."
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: NewStyles(DefaultTheme()),
		keys:   DefaultKeyMap(),
		input:  ti,
		mode:   ModeInput,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("shiori"),
		a.loadStats(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case searchCompleted:
		a.query = msg.query
		a.passages = msg.passages
		a.selected = 0
		a.searched = true
		if len(a.passages) > 0 {
			a.mode = ModeResults
			a.input.Blur()
		}
		// A search may have triggered a reload.
		return a, a.loadStats()

	case statsLoaded:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.stats = &msg.stats
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a.handleKey(msg)
	}

	if a.mode == ModeInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeInput:
		switch {
		case key.Matches(msg, a.keys.Search):
			return a, a.search(a.input.Value())
		case key.Matches(msg, a.keys.Back):
			if len(a.passages) > 0 {
				a.mode = ModeResults
				a.input.Blur()
				return a, nil
			}
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case ModeResults:
		switch {
		case key.Matches(msg, a.keys.Up):
			if a.selected > 0 {
				a.selected--
			}
		case key.Matches(msg, a.keys.Down):
			if a.selected < len(a.passages)-1 {
				a.selected++
			}
		case key.Matches(msg, a.keys.Open):
			a.mode = ModeDetail
		case key.Matches(msg, a.keys.NewSearch), key.Matches(msg, a.keys.Back):
			a.mode = ModeInput
			a.input.SetValue("")
			return a, a.input.Focus()
		}

	case ModeDetail:
		if key.Matches(msg, a.keys.Back) {
			a.mode = ModeResults
		}
	}
	return a, nil
}

// search returns a command that runs the query against the search port.
func (a *App) search(q string) tea.Cmd {
	if strings.TrimSpace(q) == "" {
		return nil
	}
	svc := a.ports.Search
	ctx := a.ctx
	return func() tea.Msg {
		passages := svc.Search(ctx, q, domain.SearchOptions{})
		return searchCompleted{query: q, passages: passages}
	}
}

func (a *App) loadStats() tea.Cmd {
	if a.ports.Corpus == nil {
		return nil
	}
	svc := a.ports.Corpus
	ctx := a.ctx
	return func() tea.Msg {
		stats, err := svc.Stats(ctx)
		return statsLoaded{stats: stats, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("shiori"))
	if header := a.header(); header != "" {
		b.WriteString("  ")
		b.WriteString(a.styles.Muted.Render(header))
	}
	b.WriteString("\n\n")

	switch a.mode {
	case ModeDetail:
		b.WriteString(a.viewDetail())
	default:
		b.WriteString(a.styles.Input.Render(a.input.View()))
		b.WriteString("\n\n")
		b.WriteString(a.viewResults())
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render(a.help()))
	return b.String()
}

func (a *App) header() string {
	if a.err != nil {
		return a.styles.Error.Render(a.err.Error())
	}
	if a.stats == nil {
		return ""
	}
	return fmt.Sprintf("%d chunks from %d files in %s", a.stats.Chunks, a.stats.Files, a.stats.Dir)
}

func (a *App) viewResults() string {
	if !a.searched {
		return ""
	}
	if len(a.passages) == 0 {
		return a.styles.Muted.Render(fmt.Sprintf("No passages match %q.", a.query)) + "\n"
	}

	var b strings.Builder
	for i, p := range a.passages {
		line := fmt.Sprintf("%2d. %s  %s", i+1, p.Source, preview(p.Content, previewRunes))
		if i == a.selected {
			b.WriteString(a.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(a.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) viewDetail() string {
	p := a.passages[a.selected]
	body := a.styles.Source.Render(p.Source) + "\n\n" + p.Content
	style := a.styles.Passage
	if a.width > 4 {
		style = style.Width(a.width - 4)
	}
	return style.Render(body) + "\n"
}

func (a *App) help() string {
	switch a.mode {
	case ModeResults:
		return "[↑/↓] navigate  [enter] read  [/] new search  [ctrl+c] quit"
	case ModeDetail:
		return "[esc] back  [ctrl+c] quit"
	default:
		return "[enter] search  [esc] quit"
	}
}

// preview flattens whitespace and cuts s to at most n runes.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Mode returns the focused part of the screen.
func (a *App) Mode() Mode {
	return a.mode
}

// Query returns the last submitted query.
func (a *App) Query() string {
	return a.query
}

// Passages returns the current results.
func (a *App) Passages() []domain.Passage {
	return a.passages
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.selected
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	if width > 10 {
		a.input.Width = width - 10
	}
}
