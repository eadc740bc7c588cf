package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ExtractRowMsg is sent when one input row has been classified.
type ExtractRowMsg struct {
	Index   int
	Digest  string
	Amount  string // formatted SUI amount, empty when absent
	Note    string
	Matched bool
}

// ExtractDoneMsg signals that the run finished (or was cancelled).
type ExtractDoneMsg struct {
	Err error
}

// Keep the view bounded; older rows scroll away.
const maxVisibleRows = 12

// ExtractModel is the Bubble Tea model for the live extraction view.
type ExtractModel struct {
	Keyword string
	Total   int
	// Cancel stops the running extraction; wired to q / ctrl+c.
	Cancel func()

	rows      []ExtractRowMsg
	processed int
	matched   int
	frame     int
	done      bool
	err       error
}

type progressTickMsg struct{}

func progressTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

// Init starts the spinner ticker.
func (m ExtractModel) Init() tea.Cmd { return progressTick() }

// Update advances the model.
func (m ExtractModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.Cancel != nil {
				m.Cancel()
			}
			// Stay on screen until the runner confirms via ExtractDoneMsg,
			// so the skipped-row markers are visible.
		}

	case progressTickMsg:
		if m.done {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, progressTick()

	case ExtractRowMsg:
		m.processed++
		if msg.Matched {
			m.matched++
		}
		m.rows = append(m.rows, msg)
		if len(m.rows) > maxVisibleRows {
			m.rows = m.rows[len(m.rows)-maxVisibleRows:]
		}

	case ExtractDoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the progress header and the most recent rows.
func (m ExtractModel) View() string {
	var sb strings.Builder

	sb.WriteString(StyleTitle.Render(fmt.Sprintf("Extracting — keyword %q", m.Keyword)))
	sb.WriteString("\n")

	status := fmt.Sprintf("%d/%d processed · %d matched", m.processed, m.Total, m.matched)
	if m.done {
		if m.err != nil {
			sb.WriteString(Err(status + " · stopped: " + m.err.Error()))
		} else {
			sb.WriteString(Success(status))
		}
	} else {
		frame := StyleAccent.Render(spinnerFrames[m.frame])
		sb.WriteString(frame + " " + StyleValue.Render(status))
	}
	sb.WriteString("\n\n")

	for _, row := range m.rows {
		icon := StyleMeta.Render("·")
		if row.Matched {
			icon = StyleSuccess.Render("✓")
		} else if row.Amount == "" {
			icon = StyleWarning.Render("–")
		}
		amount := row.Amount
		if amount == "" {
			amount = "—"
		}
		sb.WriteString(fmt.Sprintf("  %s %s %12s  %s\n",
			icon,
			Addr(TruncateDigest(row.Digest)),
			Val(amount),
			Meta(row.Note),
		))
	}

	if !m.done {
		sb.WriteString("\n" + Meta("q to stop — finished rows are kept") + "\n")
	}
	return sb.String()
}
