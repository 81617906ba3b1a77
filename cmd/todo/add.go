package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task",
		Long: `Add a task to the end of the list. Arguments are joined with spaces.

Examples:
  todo add Buy milk`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			t, ok, err := s.tasks.AddTask(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("task text cannot be empty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatTask(t))
			return nil
		},
	}
}
