package width

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"spaces", "  a  ", 5},
		{"cjk wide", "你好", 4},
		{"mixed ascii cjk", "go语言", 6},
		{"combining acute", "é", 1},
		{"zero width joiner emoji", "\U0001F469‍\U0001F4BB", 2},
		{"control chars", "\x00\x01\x1b", 0},
		{"tab has no intrinsic width", "\t", 0},
		{"hangul", "한", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.in); got != tt.want {
				t.Errorf("String(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestAnnotations(t *testing.T) {
	if got := Annotations(nil); got != 0 {
		t.Errorf("Annotations(nil) = %d, want 0", got)
	}

	got := Annotations([]string{"12", "你", ""})
	if got != 4 {
		t.Errorf("Annotations = %d, want 4", got)
	}
}
