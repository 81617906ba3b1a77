package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := parseID(a)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			var missing []int64
			for _, id := range ids {
				ok, err := s.tasks.DeleteTask(id)
				if err != nil {
					return err
				}
				if !ok {
					missing = append(missing, id)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			}
			if len(missing) > 0 {
				return &notFoundError{ID: missing[0]}
			}
			return nil
		},
	}
}
