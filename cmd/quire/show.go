package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire/pkg/core"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print the first note with the given id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		defer w.Close()

		n, ok := w.Notebook.Get(args[0])
		if !ok {
			return fmt.Errorf("note %s: %w", args[0], core.ErrNotFound)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id:         %s\n", n.ID)
		fmt.Fprintf(out, "title:      %s\n", n.Title)
		fmt.Fprintf(out, "importance: %s\n", n.Importance)
		fmt.Fprintf(out, "color:      %s\n", core.EncodeColor(n.Color))
		fmt.Fprintf(out, "\n%s\n", n.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
