package view

import (
	"strings"
	"testing"
	"time"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "experience", want: "Experience"},
		{input: "web-development", want: "Web Development"},
		{input: "  ", want: ""},
	}
	for _, tt := range tests {
		if got := Label(tt.input); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if got := Initials("aayan bothra"); got != "AB" {
		t.Errorf("expected initials AB, got %q", got)
	}
}

func TestTimelineIconFallbacks(t *testing.T) {
	if TimelineIcon("award") == TimelineIcon("unknown") {
		t.Fatalf("expected award icon to differ from default")
	}
	if TimelineIcon("", "experience") != TimelineIcon("work") {
		t.Fatalf("expected experience entries to use the work icon")
	}
	if !strings.Contains(string(TimelineIcon()), "<svg") {
		t.Fatalf("expected default svg")
	}
	if len(TimelineIconOptions()) != 3 {
		t.Fatalf("expected three timeline icon options")
	}
}

func TestLinkIcon(t *testing.T) {
	if LinkIcon("Source", "https://github.com/x/y") != LinkIcon("github", "") {
		t.Fatalf("expected github icon from url")
	}
	if LinkIcon("Watch Trailer", "https://youtu.be/abc") == LinkIcon("Visit Website", "https://example.com") {
		t.Fatalf("expected youtube icon to differ from external icon")
	}
}

func TestLines(t *testing.T) {
	got := Lines("• Led the UI design\r\n\n- Built the backend  \n   ")
	want := []string{"Led the UI design", "Built the backend"}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d (%q)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
	if got := FormatDate(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)); got != "March 5, 2024" {
		t.Fatalf("unexpected date %q", got)
	}
}

func TestFuncMapContains(t *testing.T) {
	fn, ok := FuncMap()["contains"].(func([]string, string) bool)
	if !ok {
		t.Fatal("contains helper missing from FuncMap")
	}
	if !fn([]string{"Go", "React"}, "React") || fn(nil, "Go") {
		t.Fatal("contains helper returned unexpected result")
	}
}
