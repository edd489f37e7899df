package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bandslicer/pkg/render"
)

// meshExtensions are the input files the slicing commands accept.
var meshExtensions = []string{"json", "obj"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for bandslicer and write it to stdout.

Mesh arguments complete to .json and .obj files, --format completes every
comma-separated export format.

  $ source <(bandslicer completion bash)
  $ bandslicer completion zsh > "${fpath[1]}/_bandslicer"
  $ bandslicer completion fish > ~/.config/fish/completions/bandslicer.fish
  PS> bandslicer completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unknown shell %q", args[0])
		},
	}
}

// registerCompletions attaches argument and flag completion to every
// subcommand of root that takes a mesh, a result or a format list.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		switch cmd.Name() {
		case "slice", "highlight", "browse":
			cmd.ValidArgsFunction = firstArgFiles(meshExtensions...)
		case "render":
			cmd.ValidArgsFunction = firstArgFiles("json")
		}
		if cmd.Flags().Lookup("format") != nil {
			_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
		}
		if cmd.Flags().Lookup("mesh-format") != nil {
			_ = cmd.RegisterFlagCompletionFunc("mesh-format", cobra.FixedCompletions(meshExtensions, cobra.ShellCompDirectiveNoFileComp))
		}
		if cmd.Flags().Lookup("mesh") != nil {
			_ = cmd.MarkFlagFilename("mesh", meshExtensions...)
		}
	}
}

func firstArgFiles(exts ...string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}

// completeFormats completes the last element of a comma-separated format
// list, skipping formats already listed.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	listed := strings.Split(strings.TrimSuffix(prefix, ","), ",")

	var out []string
	for _, f := range render.Formats {
		name := string(f)
		if slices.Contains(listed, name) || !strings.HasPrefix(name, last) {
			continue
		}
		out = append(out, prefix+name)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
