package cli

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/bandslicer/pkg/slicer"
)

func browseResult() *slicer.Result {
	return &slicer.Result{
		Prefix: "slice",
		Bands: []slicer.Band{
			{Index: 0, Name: "slice0", Size: 4, Subsets: []slicer.SubsetResult{
				{Name: "slice0.0", Seed: 0, Strategy: slicer.PickMaximum, Members: []int{0, 1, 2, 3}, Chain: []int{0, 0, 1, 2, 3}},
			}},
			{Index: 1, Name: "slice1", Size: 4, Subsets: []slicer.SubsetResult{
				{Name: "slice1.0", Seed: 4, Strategy: slicer.PickMinimum, Members: []int{4, 5}, Chain: []int{4, 5}},
				{Name: "slice1.1", Seed: 6, Strategy: slicer.PickMinimum, Members: []int{6, 7}, Chain: []int{6, 7}},
			}},
			{Index: 2, Name: "slice2", Size: 1},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m BandBrowserModel, keys ...string) BandBrowserModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(BandBrowserModel)
	}
	return m
}

func TestBrowserNavigation(t *testing.T) {
	tests := []struct {
		keys   []string
		cursor int
		subset int
		ids    []int
	}{
		{nil, 0, -1, []int{0, 1, 2, 3}},
		{[]string{"down"}, 1, -1, []int{4, 5, 6, 7}},
		{[]string{"down", "right"}, 1, 0, []int{4, 5}},
		{[]string{"j", "l", "l"}, 1, 1, []int{6, 7}},
		{[]string{"down", "right", "right", "right"}, 1, -1, []int{4, 5, 6, 7}},
		{[]string{"down", "left"}, 1, 1, []int{6, 7}},
		{[]string{"down", "right", "up"}, 0, -1, []int{0, 1, 2, 3}},
		{[]string{"up", "k"}, 0, -1, []int{0, 1, 2, 3}},
		{[]string{"down", "down", "down"}, 2, -1, []int{}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.keys, "+"), func(t *testing.T) {
			m := press(t, NewBandBrowserModel(browseResult()), tt.keys...)
			if m.Cursor != tt.cursor || m.Subset != tt.subset {
				t.Errorf("cursor = %d, subset = %d, want %d, %d", m.Cursor, m.Subset, tt.cursor, tt.subset)
			}
			if got := m.Selection(); !slices.Equal(got, tt.ids) {
				t.Errorf("Selection() = %v, want %v", got, tt.ids)
			}
		})
	}
}

func TestBrowserQuit(t *testing.T) {
	m := NewBandBrowserModel(browseResult())
	for _, k := range []string{"q", "esc"} {
		msg := key(k)
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command does not quit", k)
		}
	}
}

func TestBrowserWindowSize(t *testing.T) {
	m := NewBandBrowserModel(browseResult())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(BandBrowserModel)
	if m.Height != 34 || m.Width != 120 {
		t.Errorf("Height = %d, Width = %d", m.Height, m.Width)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 4})
	m = next.(BandBrowserModel)
	if m.Height != 5 {
		t.Errorf("Height = %d, want minimum 5", m.Height)
	}
	if m.detailWidth() != 24 {
		t.Errorf("detailWidth() = %d, want 24", m.detailWidth())
	}
}

func TestBrowserScrolls(t *testing.T) {
	m := NewBandBrowserModel(browseResult())
	m.Height = 1
	m = press(t, m, "down", "down")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	m = press(t, m, "up")
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
}

func TestBrowserView(t *testing.T) {
	m := NewBandBrowserModel(browseResult())
	view := m.View()
	for _, want := range []string{"Bands (3)", "slice0", "slice1", "all subsets", "4 chain vertices", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(t, m, "down", "right")
	if view := m.View(); !strings.Contains(view, "slice1.0") || !strings.Contains(view, "seed 4") {
		t.Errorf("subset detail missing from view")
	}

	m = press(t, m, "down")
	if view := m.View(); !strings.Contains(view, "no subsets") {
		t.Errorf("empty band not reported")
	}
}
