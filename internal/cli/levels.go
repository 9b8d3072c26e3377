package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bintree/pkg/pipeline"
	"github.com/matzehuels/bintree/pkg/tree"
)

// levelsCommand creates the levels command, which prints the level-wise form
// of the tree: one line per level, root first, with a placeholder for every
// absent node.
func (c *CLI) levelsCommand() *cobra.Command {
	var (
		vf          valueFlags
		placeholder string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "levels [values...]",
		Short: "Print the level-wise form of a tree",
		Example: `  bintree levels 1 2 3 4
  bintree levels --json -i values.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := vf.load(args)
			if err != nil {
				return err
			}
			opts := c.options(vals, &vf, &textFlags{})
			b, err := pipeline.Build(opts)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("built tree", "values", len(b.Values), "depth", b.Depth)

			if asJSON {
				return writeLevelsJSON(cmd.OutOrStdout(), b.Levels)
			}
			if placeholder == "" {
				placeholder = c.Config.Render.Placeholder
			}
			return writeLevels(cmd.OutOrStdout(), b.Levels, placeholder)
		},
	}

	addValueFlags(cmd, &vf)
	cmd.Flags().StringVar(&placeholder, "placeholder", "", `label for absent nodes (default "NY")`)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the levels as a JSON array with null for absent nodes")

	return cmd
}

// writeLevels prints one level per line, slots separated by spaces.
func writeLevels(w io.Writer, levels [][]tree.Slot[string], placeholder string) error {
	for _, level := range levels {
		labels := make([]string, len(level))
		for i, s := range level {
			if s.Valid {
				labels[i] = s.Value
			} else {
				labels[i] = placeholder
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(labels, " ")); err != nil {
			return err
		}
	}
	return nil
}

// writeLevelsJSON prints the levels as a JSON array of arrays.
func writeLevelsJSON(w io.Writer, levels [][]tree.Slot[string]) error {
	if levels == nil {
		levels = [][]tree.Slot[string]{}
	}
	data, err := json.Marshal(levels)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
