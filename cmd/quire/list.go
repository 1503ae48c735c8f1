package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire/pkg/adapters/memory"
	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/notebook"
)

var (
	listJSON  bool
	listMatch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notes in the notebook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w, err := openWorkspace(ctx)
		if err != nil {
			return err
		}
		defer w.Close()

		if listJSON && listMatch == "" {
			data, err := w.Notebook.Marshal()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		notes := w.Notebook.Notes()
		if listMatch != "" {
			if notes, err = w.Notebook.Find(listMatch); err != nil {
				return err
			}
		}

		if listJSON {
			// Render the filtered subset with the same codec as the document.
			data, err := subsetDocument(notes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, n := range notes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Importance, core.EncodeColor(n.Color), n.Title)
		}
		return tw.Flush()
	},
}

func subsetDocument(notes []core.Note) ([]byte, error) {
	nb := notebook.New(memory.New())
	for _, n := range notes {
		nb.Add(n)
	}
	return nb.Marshal()
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output the notes as a JSON document")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only notes whose title matches this glob")
}
