package app

import "testing"

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{0, LayoutNarrow},
		{20, LayoutNarrow},
		{39, LayoutNarrow},
		{40, LayoutMedium},
		{60, LayoutMedium},
		{79, LayoutMedium},
		{80, LayoutWide},
		{120, LayoutWide},
		{200, LayoutWide},
	}
	for _, tt := range tests {
		got := GetLayoutMode(tt.width)
		if got != tt.want {
			t.Errorf("GetLayoutMode(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestBarHeights(t *testing.T) {
	if got := MenuBarHeight(); got != 1 {
		t.Errorf("MenuBarHeight() = %d, want 1", got)
	}
	if got := StatusBarHeight(); got != 1 {
		t.Errorf("StatusBarHeight() = %d, want 1", got)
	}
}

func TestContentHeight(t *testing.T) {
	tests := []struct {
		total   int
		console int
		want    int
	}{
		{24, 8, 14},
		{24, 1, 21},
		{10, 8, 0},
		{2, 1, 0},
		{0, 0, 0},
		{80, 8, 70},
	}
	for _, tt := range tests {
		got := ContentHeight(tt.total, tt.console)
		if got != tt.want {
			t.Errorf("ContentHeight(%d, %d) = %d, want %d", tt.total, tt.console, got, tt.want)
		}
	}
}
