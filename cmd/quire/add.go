package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire/pkg/core"
)

var (
	addImportance string
	addColor      string
	addID         string
)

var addCmd = &cobra.Command{
	Use:   "add [title] [content]",
	Short: "Add a note and save the notebook",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		importance, err := core.ParseImportance(addImportance)
		if err != nil {
			return err
		}
		opts := []core.NoteOption{core.WithID(addID)}
		if addColor != "" {
			c, err := core.DecodeColor(addColor)
			if err != nil {
				return err
			}
			opts = append(opts, core.WithColor(c))
		}

		ctx := cmd.Context()
		w, err := openWorkspace(ctx)
		if err != nil {
			return err
		}
		defer w.Close()

		n := core.NewNote(args[0], args[1], importance, opts...)
		w.Notebook.Add(n)
		if err := w.Notebook.Save(ctx); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note added: %s\n", n.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addImportance, "importance", "i", string(core.Normal), "important, normal or unimportant")
	addCmd.Flags().StringVar(&addColor, "color", "", "Color as RRGGBB (default white)")
	addCmd.Flags().StringVar(&addID, "id", "", "Note id (default: a new UUID)")
}
