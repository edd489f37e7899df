package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bandslicer/pkg/slicer"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var flags sliceFlags

	cmd := &cobra.Command{
		Use:   "browse [mesh]",
		Short: "Explore the bands of a mesh interactively",
		Long: `Slice a mesh and explore its bands in a terminal UI.

Move between bands with up/down, cycle through the subsets of a band with
left/right and quit with q. The chain vertices of the current selection are
shown beside the band list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), cmd.InOrStdin(), args[0], &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, stdin io.Reader, input string, flags *sliceFlags) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	opts, err := flags.options(cfg, input, stdin)
	if err != nil {
		return err
	}
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

	if len(res.Slices.Bands) == 0 {
		printWarning("No bands to browse")
		return nil
	}

	p := tea.NewProgram(NewBandBrowserModel(res.Slices), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// =============================================================================
// BandBrowserModel - Interactive band exploration
// =============================================================================

// BandBrowserModel is the bubbletea model for browsing slicing results.
type BandBrowserModel struct {
	Result *slicer.Result
	Cursor int // selected band
	Subset int // selected subset within the band, -1 for all
	Height int
	Offset int
	Width  int
}

// NewBandBrowserModel creates a browser positioned on the first band.
func NewBandBrowserModel(res *slicer.Result) BandBrowserModel {
	return BandBrowserModel{
		Result: res,
		Subset: -1,
		Height: 15,
		Width:  80,
	}
}

func (m BandBrowserModel) Init() tea.Cmd {
	return nil
}

func (m BandBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Subset = -1
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Result.Bands)-1 {
				m.Cursor++
				m.Subset = -1
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "right", "l", "tab":
			// Cycle all → 0 → 1 → ... → all.
			n := len(m.Result.Bands[m.Cursor].Subsets)
			m.Subset++
			if m.Subset >= n {
				m.Subset = -1
			}
		case "left", "h", "shift+tab":
			n := len(m.Result.Bands[m.Cursor].Subsets)
			m.Subset--
			if m.Subset < -1 {
				m.Subset = n - 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
		m.Width = msg.Width
	}
	return m, nil
}

// Selection returns the chain vertices of the current selection.
func (m BandBrowserModel) Selection() []int {
	var ids []int
	var err error
	if m.Subset < 0 {
		ids, err = m.Result.Select(m.Cursor)
	} else {
		ids, err = m.Result.Select(m.Cursor, m.Subset)
	}
	if err != nil {
		return nil
	}
	return ids
}

func (m BandBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Bands (%d)", len(m.Result.Bands))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ band  ←/→ subset  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Result.Bands) {
		end = len(m.Result.Bands)
	}

	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		band := m.Result.Bands[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-12s %4d vertices  %2d subsets", cursor, band.Name, band.Size, len(band.Subsets))
		switch {
		case i == m.Cursor:
			list.WriteString(listSelectedStyle.Render(line))
		case len(band.Subsets) == 0:
			list.WriteString(listDimStyle.Render(line))
		default:
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	panel := panelStyle.Width(m.detailWidth()).Render(m.detail())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", panel))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Result.Bands))))

	return b.String()
}

func (m BandBrowserModel) detail() string {
	band := m.Result.Bands[m.Cursor]
	var b strings.Builder

	b.WriteString(StyleHighlight.Render(band.Name))
	b.WriteString("\n")
	if len(band.Subsets) == 0 {
		b.WriteString(listDimStyle.Render("no subsets"))
		return b.String()
	}

	if m.Subset < 0 {
		b.WriteString(listDimStyle.Render("all subsets"))
	} else {
		s := band.Subsets[m.Subset]
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%s · seed %d · %s · %d members", s.Name, s.Seed, s.Strategy, len(s.Members))))
	}
	b.WriteString("\n\n")

	ids := m.Selection()
	b.WriteString(StyleValue.Render(fmt.Sprintf("%d chain vertices", len(ids))))
	b.WriteString("\n")
	b.WriteString(StyleNumber.Render(joinInts(ids, " ")))
	return b.String()
}

func (m BandBrowserModel) detailWidth() int {
	w := m.Width - 48
	if w < 24 {
		w = 24
	}
	return w
}
