package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bandslicer/pkg/pipeline"
)

// highlightCommand creates the highlight command.
func (c *CLI) highlightCommand() *cobra.Command {
	var (
		flags      sliceFlags
		band       int
		subsetsStr string
		formatsStr string
		output     string
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "highlight [mesh]",
		Short: "Print the chain vertices of a band",
		Long: `Print the chain vertices of a band.

With --subsets only the listed subsets of the band contribute; otherwise every
subset does. Vertex ids are printed in chain order without duplicates.

With --format the result is also exported with the selected vertices
emphasized.`,
		Example: `  bandslicer highlight bunny.obj --band 3
  bandslicer highlight bunny.obj --band 3 --subsets 0,2 --plain
  bandslicer highlight bunny.obj --band 3 -f svg -o band3.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subsets, err := parseIndices(subsetsStr)
			if err != nil {
				return err
			}
			var formats []string
			if formatsStr != "" {
				formats = parseFormats(formatsStr)
				if err := pipeline.ValidateFormats(formats); err != nil {
					return err
				}
			}
			sel := &pipeline.Selection{Band: band, Subsets: subsets}
			return c.runHighlight(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], &flags, sel, formats, output, plain)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&band, "band", "b", 0, "band index")
	cmd.Flags().StringVarP(&subsetsStr, "subsets", "s", "", "subset indices within the band (comma-separated, default all)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "also export in format(s): json, dot, svg, obj (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print only vertex ids, one per line")

	return cmd
}

func (c *CLI) runHighlight(ctx context.Context, stdin io.Reader, stdout io.Writer, input string, flags *sliceFlags, sel *pipeline.Selection, formats []string, output string, plain bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	opts, err := flags.options(cfg, input, stdin)
	if err != nil {
		return err
	}
	opts.Highlight = sel
	opts.Formats = formats
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if plain {
		for _, id := range res.Selected {
			fmt.Fprintln(stdout, id)
		}
	} else {
		b := res.Slices.Bands[sel.Band]
		scope := "all subsets"
		if len(sel.Subsets) > 0 {
			scope = "subsets " + joinInts(sel.Subsets, ", ")
		}
		printSuccess("%s (%s): %d vertices", StyleHighlight.Render(b.Name), scope, len(res.Selected))
		printDetail("%s", joinInts(res.Selected, " "))
	}

	if len(formats) == 0 {
		return nil
	}
	paths, err := writeArtifacts(res.Artifacts, formats, input, output)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

func joinInts(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
