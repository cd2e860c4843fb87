// Package main is the entry point for the boxcar-stress dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/billie-coop/boxcar/internal/stress"
	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Style definitions for the UI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginTop(1).
			MarginBottom(1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	badStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages flowing into the model.
type (
	snapshotMsg  stress.Snapshot
	subClosedMsg struct{}
	doneMsg      struct {
		results []stress.Result
		err     error
	}
)

// model represents the dashboard state.
type model struct {
	cfg     *stress.Config
	runner  *stress.Runner
	sub     <-chan stress.Snapshot
	spinner spinner.Model

	latest  map[string]stress.Snapshot
	results []stress.Result
	err     error
	done    bool
	width   int
	height  int
}

func initialModel(cfg *stress.Config) model {
	r := stress.NewRunner(cfg)
	return model{
		cfg:     cfg,
		runner:  r,
		sub:     r.Subscribe(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		latest:  make(map[string]stress.Snapshot),
	}
}

// Init kicks off the run, the snapshot listener and the spinner.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen(), m.run())
}

// run executes the whole stress run in the background.
func (m model) run() tea.Cmd {
	return func() tea.Msg {
		results, err := m.runner.Run(context.Background())
		return doneMsg{results: results, err: err}
	}
}

// listen waits for the next live snapshot.
func (m model) listen() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.sub
		if !ok {
			return subClosedMsg{}
		}
		return snapshotMsg(snap)
	}
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case snapshotMsg:
		snap := stress.Snapshot(msg)
		m.latest[snap.Backend] = snap
		return m, m.listen()

	case subClosedMsg:
		return m, nil

	case doneMsg:
		m.results = msg.results
		m.err = msg.err
		m.done = true
		return m, nil
	}

	// Keep the spinner alive while scenarios run
	if !m.done {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m model) View() tea.View {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🚃 boxcar stress"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"%d writers × %d ops, %d readers × %d ops per backend",
		m.cfg.Writers, m.cfg.OpsPerWriter, m.cfg.Readers, m.cfg.OpsPerReader)))
	b.WriteString("\n\n")

	for _, name := range m.cfg.Backends {
		b.WriteString(m.renderBackend(name))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n" + badStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	if m.done {
		b.WriteString("\n" + helpStyle.Render("Run complete. Press 'q' to quit"))
	} else {
		b.WriteString("\n" + helpStyle.Render("Press 'q' to quit"))
	}

	return tea.NewView(b.String())
}

// renderBackend renders one backend's line: queued, running or done.
func (m model) renderBackend(name string) string {
	if res, ok := m.resultFor(name); ok {
		verdict := okStyle.Render("counter exact")
		if !res.Verified {
			verdict = badStyle.Render(fmt.Sprintf("LOST %d UPDATES", res.Expected-res.Got))
		}
		compound := okStyle.Render("compound ok")
		if !res.CompoundOK {
			compound = badStyle.Render("COMPOUND BROKEN")
		}
		return fmt.Sprintf("  %-8s %11.0f ops/s  %s  %s", name, res.OpsPerSec, verdict, compound)
	}

	if snap, ok := m.latest[name]; ok {
		return fmt.Sprintf("  %-8s %s %d writes / %d reads  %s",
			name, m.spinner.View(), snap.Writes, snap.Reads,
			dimStyle.Render(snap.Elapsed.Round(time.Millisecond).String()))
	}

	return fmt.Sprintf("  %-8s %s", name, dimStyle.Render("queued"))
}

func (m model) resultFor(name string) (stress.Result, bool) {
	for _, res := range m.results {
		if res.Backend == name {
			return res, true
		}
	}
	return stress.Result{}, false
}

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	plain := flag.Bool("plain", false, "run headless and print results")
	report := flag.Bool("report", false, "with -plain, render a markdown report")
	flag.Parse()

	cfg, err := stress.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *plain {
		if err := runPlain(cfg, *report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
