package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bandslicer/pkg/mesh"
)

// sampleCommand creates the sample command for generating test meshes.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		size   float64
		cells  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "sample [sphere|box|cylinder]",
		Short: "Write a generated sample mesh",
		Long: `Write a generated sample mesh.

The solid is rendered on a uniform marching-cubes grid and welded into an
indexed mesh, which gives the evenly spaced vertices slicing works best on.
The output format follows the file extension (.json or .obj).`,
		Example: `  bandslicer sample sphere -o sphere.obj
  bandslicer sample cylinder --size 2 --cells 32 -o tube.json`,
		ValidArgs: []string{"sphere", "box", "cylinder"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, err := mesh.ParseShape(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("%s.obj", shape)
			}

			timer := startStage(c.Logger, "sample")
			m, err := mesh.Sample(mesh.SampleOptions{Shape: shape, Size: size, Cells: cells})
			if err != nil {
				return err
			}
			timer.done("shape", shape, "cells", cells, "vertices", len(m.Vertices), "edges", len(m.Edges))

			if err := mesh.WriteFile(output, m); err != nil {
				return err
			}
			printSuccess("Wrote sample %s", shape)
			printFile(output)
			printNewline()
			printNextStep("Slice it", fmt.Sprintf("%s slice %s", appName, output))
			return nil
		},
	}

	cmd.Flags().Float64Var(&size, "size", 1, "sphere radius, box edge or cylinder height")
	cmd.Flags().IntVar(&cells, "cells", mesh.DefaultSampleCells, "grid resolution along the longest axis")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .json or .obj (default <shape>.obj)")

	return cmd
}
