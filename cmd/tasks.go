package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/nvalenti/fitweek/internal/shared"
	"github.com/nvalenti/fitweek/internal/ui"
)

// Tasks launches the interactive terminal viewer for a user's weekly tasks.
func (r *Runner) Tasks(ctx context.Context, cmd *cli.Command) error {
	app, err := r.connect(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := app.auth.GetByUsername(cmd.String("user"))
	if err != nil {
		return fmt.Errorf("unknown user %q: %w", cmd.String("user"), err)
	}

	// Redirect logs to file to avoid interfering with terminal rendering
	fileLogger, err := shared.NewFileLogger("./tmp/fitweek-tasks.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(app.tracking, user.ID(), user.Username())
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running task viewer: %w", err)
	}

	return nil
}
