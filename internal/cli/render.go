package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bandslicer/pkg/errors"
	"github.com/matzehuels/bandslicer/pkg/mesh"
	"github.com/matzehuels/bandslicer/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple outputs)
	formats    []string // output formats: "json", "dot", "svg", "obj"
	meshPath   string   // source mesh, required for obj
	band       int      // band to highlight, -1 for none
	subsetsStr string   // subsets of band to highlight
}

// renderCommand creates the render command for exporting a saved result.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{band: -1}

	cmd := &cobra.Command{
		Use:   "render [result.json]",
		Short: "Export a saved slicing result in other formats",
		Long: `Export a saved slicing result in other formats.

The render command takes a result.json file (produced by 'slice') and exports
it without slicing again. OBJ export needs the source mesh for vertex
coordinates (--mesh).`,
		Example: `  bandslicer render bunny.bands.json -f svg
  bandslicer render bunny.bands.json -f obj --mesh bunny.obj
  bandslicer render bunny.bands.json -f dot --band 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if formatsStr == "" {
				opts.formats = []string{string(render.FormatSVG)}
			}
			for _, f := range opts.formats {
				if _, err := render.ParseFormat(f); err != nil {
					return err
				}
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json, obj (comma-separated)")
	cmd.Flags().StringVarP(&opts.meshPath, "mesh", "m", "", "source mesh (needed for obj)")
	cmd.Flags().IntVarP(&opts.band, "band", "b", -1, "band to highlight")
	cmd.Flags().StringVarP(&opts.subsetsStr, "subsets", "s", "", "subsets of the highlighted band (comma-separated)")

	return cmd
}

// runRender loads the result from input and exports it to the requested formats.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "result file %s", input)
		}
		return err
	}
	res, err := render.FromJSON(data)
	if err != nil {
		return fmt.Errorf("load result %s: %w", input, err)
	}
	logger.Debugf("Loaded result: %d bands", len(res.Bands))

	var m *mesh.Mesh
	if opts.meshPath != "" {
		if m, _, err = mesh.ReadFile(opts.meshPath); err != nil {
			return err
		}
	}

	var ropts render.Options
	if opts.band >= 0 {
		subsets, err := parseIndices(opts.subsetsStr)
		if err != nil {
			return err
		}
		if ropts.Highlight, err = res.Select(opts.band, subsets...); err != nil {
			return err
		}
	}

	timer := startStage(logger, "render")
	artifacts := make(map[string][]byte, len(opts.formats))
	for _, f := range opts.formats {
		format, _ := render.ParseFormat(f)
		out, err := render.Render(ctx, res, m, format, ropts)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		logger.Debugf("Generated %s: %d bytes", f, len(out))
		artifacts[f] = out
	}
	timer.done("formats", strings.Join(opts.formats, ","), "highlighted", len(ropts.Highlight))

	paths, err := writeArtifacts(artifacts, opts.formats, input, opts.output)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Infof("Generated %s", p)
	}
	return nil
}
