package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"textdigest/internal/domain"
	"textdigest/internal/tokenizer"
)

// DigestPort is the TUI-facing subset of the digest service.
type DigestPort interface {
	Summarize(ctx context.Context, text string, percentage int) (domain.SummaryResult, error)
	Keywords(ctx context.Context, text string, k int) ([]domain.Keyword, error)
	Humanize(ctx context.Context, text string) (domain.HumanizeResult, error)
	Outline(ctx context.Context, text string) ([]domain.OutlineEntry, error)
}

type tab int

const (
	tabSummary tab = iota
	tabKeywords
	tabHumanized
	tabOutline
	tabCount
)

var tabNames = [tabCount]string{"Summary", "Keywords", "Humanized", "Outline"}

// Model is the Bubble Tea model for browsing digests of loaded transcripts.
type Model struct {
	ctx        context.Context
	service    DigestPort
	docs       []domain.Document
	doc        int
	percentage int
	keywordsK  int

	summary   domain.SummaryResult
	keywords  []domain.Keyword
	humanized string
	outline   []domain.OutlineEntry

	input    textinput.Model
	viewport viewport.Model
	tab      tab
	status   string
	ready    bool
}

// New creates a model showing docs, starting with the first one.
func New(ctx context.Context, service DigestPort, docs []domain.Document, percentage, keywordsK int) Model {
	ti := textinput.New()
	ti.Prompt = "% "
	ti.Placeholder = "Summary percentage (1-100), Enter to apply"
	ti.Focus()
	ti.CharLimit = 3
	m := Model{
		ctx:        ctx,
		service:    service,
		docs:       docs,
		percentage: percentage,
		keywordsK:  keywordsK,
		input:      ti,
		viewport:   viewport.New(0, 0),
	}
	m.load()
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		bw, bh := bodyBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header and tabs, status, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width-bw)
		m.viewport.Height = max(3, vh-bh)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			m.applyPercentage(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			return m, nil
		case "tab":
			m.tab = (m.tab + 1) % tabCount
			m.refresh()
			return m, nil
		case "shift+tab":
			m.tab = (m.tab - 1 + tabCount) % tabCount
			m.refresh()
			return m, nil
		case "ctrl+n":
			if len(m.docs) > 1 {
				m.doc = (m.doc + 1) % len(m.docs)
				m.load()
			}
			return m, nil
		case "ctrl+p":
			if len(m.docs) > 1 {
				m.doc = (m.doc - 1 + len(m.docs)) % len(m.docs)
				m.load()
			}
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current tab.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := "textdigest"
	if d, ok := m.current(); ok {
		title = fmt.Sprintf("textdigest  %s (%d/%d)", d.Path, m.doc+1, len(m.docs))
	}
	header := lipgloss.NewStyle().Bold(true).Render(title)
	body := bodyBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + m.renderTabs() + "\n" + body + "\n" + input + "\n" + status
}

func (m *Model) current() (domain.Document, bool) {
	if len(m.docs) == 0 {
		return domain.Document{}, false
	}
	return m.docs[m.doc], true
}

// load digests the current document.
func (m *Model) load() {
	d, ok := m.current()
	if !ok {
		m.status = "No documents loaded."
		m.refresh()
		return
	}
	var err error
	if m.summary, err = m.service.Summarize(m.ctx, d.Content, m.percentage); err != nil {
		m.fail(err)
		return
	}
	if m.keywords, err = m.service.Keywords(m.ctx, d.Content, m.keywordsK); err != nil {
		m.fail(err)
		return
	}
	h, err := m.service.Humanize(m.ctx, d.Content)
	if err != nil {
		m.fail(err)
		return
	}
	m.humanized = h.HumanizedText
	if m.outline, err = m.service.Outline(m.ctx, d.Content); err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("Summary at %d%%: %d of %d characters. Tab switches views.",
		m.percentage, m.summary.SummaryLength, m.summary.OriginalLength)
	m.refresh()
}

func (m *Model) applyPercentage(value string) {
	if value == "" {
		return
	}
	p, err := strconv.Atoi(value)
	if err != nil {
		m.status = fmt.Sprintf("Error: %q is not a number", value)
		return
	}
	d, ok := m.current()
	if !ok {
		return
	}
	res, err := m.service.Summarize(m.ctx, d.Content, p)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.percentage = p
	m.summary = res
	m.tab = tabSummary
	m.status = fmt.Sprintf("Summary at %d%%: %d of %d characters.", p, res.SummaryLength, res.OriginalLength)
	m.refresh()
}

func (m *Model) fail(err error) {
	m.status = "Error: " + err.Error()
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTab())
	m.viewport.GotoTop()
}

func (m Model) renderTabs() string {
	parts := make([]string, tabCount)
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts[i] = activeTabStyle.Render(name)
		} else {
			parts[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderTab() string {
	switch m.tab {
	case tabKeywords:
		if len(m.keywords) == 0 {
			return "No keywords."
		}
		var b strings.Builder
		for i, kw := range m.keywords {
			fmt.Fprintf(&b, "%2d. %s (%d)\n", i+1, kw.Word, kw.Count)
		}
		return b.String()
	case tabHumanized:
		return m.humanized
	case tabOutline:
		if len(m.outline) == 0 {
			return "No outline."
		}
		var b strings.Builder
		for _, e := range m.outline {
			b.WriteString(keywordStyle.Render(e.Keyword) + "\n")
			for _, ex := range e.Excerpts {
				b.WriteString("  " + ex + "\n")
			}
		}
		return b.String()
	default:
		return highlightKeywords(m.summary.Summary, m.summary.Keywords)
	}
}

var (
	bodyBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)
	keywordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// highlightKeywords renders every occurrence of the given keywords in bold.
func highlightKeywords(text string, keywords []string) string {
	if len(keywords) == 0 {
		return text
	}
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[strings.ToLower(k)] = struct{}{}
	}
	return tokenizer.MapWords(text, func(w string) string {
		if _, ok := set[strings.ToLower(w)]; ok {
			return keywordStyle.Render(w)
		}
		return w
	})
}
