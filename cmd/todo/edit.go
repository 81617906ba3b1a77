package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>...",
		Short: "Replace the text of a task",
		Long: `Replace the text of a task. Completion state is kept.

Examples:
  todo edit 1718000000000 Buy oat milk`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			t, ok := s.tasks.Find(id)
			if !ok {
				return &notFoundError{ID: id}
			}
			s.tasks.BeginEdit(t.ID, t.Text)
			s.tasks.SetEditDraft(strings.Join(args[1:], " "))
			saved, err := s.tasks.CommitEdit()
			if err != nil {
				return err
			}
			if !saved {
				s.tasks.CancelEdit()
				return errors.New("task text cannot be empty")
			}
			t, _ = s.tasks.Find(id)
			fmt.Fprintln(cmd.OutOrStdout(), formatTask(t))
			return nil
		},
	}
}
