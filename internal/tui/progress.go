// Package tui renders a run's progress and log in the terminal.
package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/conn-castle/slotswap/internal/swap"
)

const (
	defaultLogLines = 8
	maxBarWidth     = 60
	barPadding      = 4
)

type logMsg string

type progressMsg int

type doneMsg struct{}

// model shows a progress bar above the most recent log lines.
type model struct {
	title    string
	bar      progress.Model
	percent  int
	lines    []string
	maxLines int
	done     bool
}

func newModel(title string) model {
	return model{
		title:    title,
		bar:      progress.New(progress.WithDefaultGradient()),
		maxLines: defaultLogLines,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case logMsg:
		m.lines = append(m.lines, string(msg))
		if len(m.lines) > m.maxLines {
			m.lines = m.lines[len(m.lines)-m.maxLines:]
		}
	case progressMsg:
		m.percent = int(msg)
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - barPadding
		if m.bar.Width > maxBarWidth {
			m.bar.Width = maxBarWidth
		}
	}
	// Keys are ignored: a run cannot be interrupted once started.
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.title)
	b.WriteString("\n\n  ")
	b.WriteString(m.bar.ViewAs(float64(m.percent) / 100))
	b.WriteString("\n\n")
	for _, line := range m.lines {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// programSink forwards run callbacks into the bubbletea event loop.
type programSink struct {
	p *tea.Program
}

func (s programSink) Log(line string)      { s.p.Send(logMsg(line)) }
func (s programSink) Progress(percent int) { s.p.Send(progressMsg(percent)) }

// Run executes fn on its own goroutine while rendering its progress to out.
// Run returns only after fn has returned, even if the view fails first.
func Run(title string, in io.Reader, out io.Writer, fn func(sink swap.Sink)) error {
	p := tea.NewProgram(newModel(title), tea.WithInput(in), tea.WithOutput(out))
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(programSink{p: p})
		p.Send(doneMsg{})
	}()
	_, err := p.Run()
	<-done
	return err
}

// PlainSink writes log lines prefixed with the current percentage. With
// Quiet set nothing is written.
type PlainSink struct {
	Out   io.Writer
	Quiet bool

	mu      sync.Mutex
	percent int
}

// Log writes one line.
func (s *PlainSink) Log(line string) {
	if s.Quiet {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.Out, "[%3d%%] %s\n", s.percent, line)
}

// Progress records percent for the next line.
func (s *PlainSink) Progress(percent int) {
	s.mu.Lock()
	s.percent = percent
	s.mu.Unlock()
}
