package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task",
		Long: `Delete every task and remove the saved list.

Examples:
  todo reset --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all tasks without --yes")
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			total, _ := s.tasks.Counts()
			if err := s.tasks.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d tasks\n", total)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deleting all tasks")
	return cmd
}
