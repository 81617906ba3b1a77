package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"tasklist/internal/tasks"
)

func newListCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print tasks",
		Long: `Print tasks in stored order.

Examples:
  todo list
  todo list --filter incomplete`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if cmd.Flags().Changed("filter") {
				f, err := tasks.ParseFilter(filter)
				if err != nil {
					return err
				}
				s.tasks.SetFilter(f)
			}
			printTasks(cmd.OutOrStdout(), s.tasks)

			if at, ok, err := s.store.UpdatedAt(s.cfg.SlotKey); err == nil && ok {
				fmt.Fprintf(cmd.OutOrStdout(), "\nsaved %s\n", at.Local().Format(time.DateTime))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, completed or incomplete")
	return cmd
}

func printTasks(w io.Writer, mgr *tasks.Manager) {
	n := 0
	for t := range mgr.VisibleTasks() {
		fmt.Fprintln(w, formatTask(t))
		n++
	}
	switch {
	case n > 0:
	case mgr.Filter() == tasks.FilterAll:
		fmt.Fprintln(w, "no tasks")
	default:
		fmt.Fprintf(w, "no %s tasks\n", mgr.Filter())
	}
}

func formatTask(t tasks.Task) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	return fmt.Sprintf("%s %d  %s", box, t.ID, t.Text)
}
