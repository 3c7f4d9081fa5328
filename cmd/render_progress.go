package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	progressSpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	progressCountStyle   = lipgloss.NewStyle().Bold(true)
	progressUnitStyle    = lipgloss.NewStyle().Faint(true)
)

// renderProgressMsg carries one RenderAll progress callback into the program.
type renderProgressMsg struct {
	done  int
	total int
}

type renderFinishedMsg struct {
	err error
}

// renderProgressModel counts prepared set×order pairs while render-all runs.
type renderProgressModel struct {
	spinner  spinner.Model
	render   tea.Cmd
	done     int
	total    int
	finished bool
	err      error
}

func newRenderProgressModel(total int, render tea.Cmd) renderProgressModel {
	return renderProgressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(progressSpinnerStyle)),
		render:  render,
		total:   total,
	}
}

func (m renderProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.render)
}

func (m renderProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderProgressMsg:
		if msg.done > m.done {
			m.done = msg.done
		}
		m.total = msg.total
		return m, nil
	case renderFinishedMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m renderProgressModel) View() string {
	if m.finished {
		return ""
	}
	count := progressCountStyle.Render(fmt.Sprintf("%d/%d", m.done, m.total))
	return fmt.Sprintf("%s rendered %s %s", m.spinner.View(), count, progressUnitStyle.Render("set×order"))
}

// renderWithProgress runs render under a live counter fed by the progress
// callback it hands to render.
func renderWithProgress(ctx context.Context, output io.Writer, total int, render func(context.Context, func(done, total int)) error) error {
	var program *tea.Program
	report := func(done, total int) {
		program.Send(renderProgressMsg{done: done, total: total})
	}
	start := func() tea.Msg {
		return renderFinishedMsg{err: render(ctx, report)}
	}

	program = tea.NewProgram(
		newRenderProgressModel(total, start),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("render progress: %w", err)
	}
	model, ok := final.(renderProgressModel)
	if !ok {
		return fmt.Errorf("render progress ended with %T", final)
	}
	return model.err
}
