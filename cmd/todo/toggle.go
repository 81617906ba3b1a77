package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between done and not done",
		Args:  cobra.ExactArgs(1),
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

			ok, err := s.tasks.ToggleCompletion(id)
			if err != nil {
				return err
			}
			if !ok {
				return &notFoundError{ID: id}
			}
			t, _ := s.tasks.Find(id)
			fmt.Fprintln(cmd.OutOrStdout(), formatTask(t))
			return nil
		},
	}
}
