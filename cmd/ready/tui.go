package main

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/ready/internal/tui"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	model := tui.New(tui.Deps{
		Ctx:     cmd.Context(),
		Logger:  app.logger,
		Tracker: app.tracker,
		UserID:  app.userID,
		Today:   func() time.Time { return time.Now().In(app.loc) },
	})

	p := tea.NewProgram(&model, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
