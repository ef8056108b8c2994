package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	errs "github.com/realassist/crimereport/pkg/errors"
	"github.com/realassist/crimereport/pkg/integrations/crimestats"
	"github.com/realassist/crimereport/pkg/pipeline"
	"github.com/realassist/crimereport/pkg/report"
)

const printingText = "Printing PDF..."

var (
	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorCyan).Padding(0, 2)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(colorGray).Background(colorDim).Padding(0, 2)
	bannerSuccessStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	bannerErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// PrintModel - Interactive report printing
// =============================================================================

// printFunc generates one report. It is called once per button press.
type printFunc func(ctx context.Context) (*pipeline.Result, error)

type (
	printDoneMsg struct {
		res *pipeline.Result
		err error
	}
	printTickMsg struct{}
)

// PrintModel is the bubbletea model behind `report --interactive`: a Print
// button that is disabled while a report is generated, plus a banner for the
// last outcome.
type PrintModel struct {
	ctx      context.Context
	print    printFunc
	heading  string
	location string

	Printing bool
	Result   *pipeline.Result
	Err      error
	Runs     int
	frame    int
}

// NewPrintModel creates a print model. location is shown after a successful
// export (normally the absolute path of report.pdf).
func NewPrintModel(ctx context.Context, heading, location string, fn printFunc) PrintModel {
	return PrintModel{ctx: ctx, print: fn, heading: heading, location: location}
}

func (m PrintModel) Init() tea.Cmd {
	return nil
}

func (m PrintModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc":
			if !m.Printing {
				return m, tea.Quit
			}
		case "enter", "p", " ":
			if m.Printing {
				return m, nil
			}
			m.Printing = true
			m.Result, m.Err = nil, nil
			m.Runs++
			return m, tea.Batch(m.run(), printTick())
		}
	case printTickMsg:
		if m.Printing {
			m.frame++
			return m, printTick()
		}
	case printDoneMsg:
		m.Printing = false
		m.Result, m.Err = msg.res, msg.err
	}
	return m, nil
}

func (m PrintModel) run() tea.Cmd {
	ctx, fn := m.ctx, m.print
	return func() tea.Msg {
		res, err := fn(ctx)
		return printDoneMsg{res: res, err: err}
	}
}

func printTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return printTickMsg{} })
}

func (m PrintModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.heading))
	b.WriteString("\n\n")

	if m.Printing {
		frame := spinnerFrames[m.frame%len(spinnerFrames)]
		b.WriteString(buttonDisabledStyle.Render(frame + " " + printingText))
	} else {
		b.WriteString(buttonStyle.Render("Print"))
	}
	b.WriteString("\n\n")

	if banner := m.banner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n\n")
	}

	help := "enter/p: print  q: quit"
	if m.Printing {
		help = "ctrl+c: abort"
	}
	b.WriteString(StyleDim.Render(help))
	return b.String()
}

func (m PrintModel) banner() string {
	switch {
	case m.Err != nil:
		return bannerErrorStyle.Render(iconError + " " + failureBanner(m.Err))
	case m.Result != nil:
		line := iconSuccess + " " + m.Result.Outcome.Status
		if m.location != "" {
			line += fmt.Sprintf(" %s %s", iconArrow, m.location)
		}
		return bannerSuccessStyle.Render(line)
	}
	return ""
}

// failureBanner maps a run error to the status line shown to the user.
// Fetch failures and PDF failures have fixed texts; rejected input shows
// its own message.
func failureBanner(err error) string {
	code := errs.GetCode(err)
	switch {
	case code == errs.ErrCodeFetch:
		return crimestats.StatusFetchFailed
	case code == errs.ErrCodeBusy, strings.HasPrefix(string(code), "INVALID_"):
		return errs.UserMessage(err)
	}
	return report.StatusFailed
}
