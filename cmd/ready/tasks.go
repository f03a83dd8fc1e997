package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garrettladley/ready/internal/schedule"
	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xtime"
)

func tasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List questionnaires and measurements that are due",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			tasks, err := app.tracker.PendingTasks(app.context(cmd.Context()), app.userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "Nothing due.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tPRIORITY\tDUE")
			for _, t := range tasks {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Type, t.Priority, xtime.FormatDay(t.DueDate))
			}
			return tw.Flush()
		},
	}
}

func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task as done today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			id := wellness.TaskID(args[0])
			err = app.tracker.CompleteTask(app.context(cmd.Context()), app.userID, id)
			if errors.Is(err, schedule.ErrUnknownTask) {
				return fmt.Errorf("unknown task %q, run `ready tasks` to list them", id)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", id)
			return nil
		},
	}
}
