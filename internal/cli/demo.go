package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bintree/pkg/pipeline"
)

// demoCommand creates the demo command, which draws the built-in sample of
// fifteen values.
func (c *CLI) demoCommand() *cobra.Command {
	opts := renderOpts{
		formats: []string{pipeline.FormatText},
		scale:   pipeline.DefaultScale,
		noCache: true,
	}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Draw a sample tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.runRender(cmd.Context(), cmd.OutOrStdout(), sampleValues, &opts); err != nil {
				return err
			}
			printNextStep("Draw your own", "bintree render 8 3 10 1 6 14")
			return nil
		},
	}

	addTextFlags(cmd, &opts.textFlags)

	return cmd
}
