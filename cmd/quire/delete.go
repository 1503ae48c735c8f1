package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete every note with the given id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w, err := openWorkspace(ctx)
		if err != nil {
			return err
		}
		defer w.Close()

		removed := w.Notebook.Delete(args[0])
		if removed == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No note with id %s\n", args[0])
			return nil
		}
		if err := w.Notebook.Save(ctx); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d note(s): %s\n", removed, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
