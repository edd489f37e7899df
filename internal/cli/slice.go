package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bandslicer/pkg/pipeline"
)

// sliceCommand creates the slice command.
func (c *CLI) sliceCommand() *cobra.Command {
	var (
		flags      sliceFlags
		formatsStr string
		output     string
		showTable  bool
	)

	cmd := &cobra.Command{
		Use:   "slice [mesh]",
		Short: "Slice a mesh into projection bands",
		Long: `Slice a mesh into projection bands.

The mesh is read from a .json or .obj file, an http(s) URL, or from stdin
when the argument is "-". Vertices are grouped into bands along the slicing direction, each band
is split into connected subsets and every subset is reduced to its chain of
boundary vertices.

Results are cached locally for faster subsequent runs.`,
		Example: `  bandslicer slice bunny.obj
  bandslicer slice bunny.obj -d 0,1,0 -f json,svg -o bunny
  bandslicer slice https://example.com/meshes/bunny.obj
  cat mesh.json | bandslicer slice - -f dot -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runSlice(cmd.Context(), cmd.InOrStdin(), args[0], &flags, formats, output, showTable)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, obj (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().BoolVarP(&showTable, "table", "t", false, "print a table of bands and subsets")

	return cmd
}

func (c *CLI) runSlice(ctx context.Context, stdin io.Reader, input string, flags *sliceFlags, formats []string, output string, showTable bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	opts, err := flags.options(cfg, input, stdin)
	if err != nil {
		return err
	}
	opts.Formats = formats
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Slicing %s...", displayName(input)))
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Slicing failed")
		return err
	}
	spinner.Stop()

	toStdout := output == stdoutPath
	if !toStdout {
		printSuccess("Sliced %s into %d bands", displayName(input), res.Stats.Bands)
		printStats(res.Stats, res.CacheInfo.SliceHit)
		if showTable {
			fmt.Println(bandTable(res.Slices))
		}
	}

	paths, err := writeArtifacts(res.Artifacts, formats, input, output)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	for _, p := range paths {
		printFile(p)
	}

	if !toStdout && input != stdoutPath {
		printNewline()
		printNextStep("Inspect a band", fmt.Sprintf("%s highlight %s --band 0", appName, input))
	}
	return nil
}

func displayName(input string) string {
	if input == stdoutPath {
		return "stdin"
	}
	return input
}
