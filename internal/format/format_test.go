package format

import "testing"

func TestDefault(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "1"},
		{42, "42"},
		{-117, "117"},
	}

	for _, tt := range tests {
		res, err := Default(tt.offset)
		if err != nil {
			t.Fatalf("Default(%d) returned error: %v", tt.offset, err)
		}
		text, style := res.Normalize()
		if text != tt.want {
			t.Errorf("Default(%d) text = %q, want %q", tt.offset, text, tt.want)
		}
		if style != DefaultStyle {
			t.Errorf("Default(%d) style = %q, want %q", tt.offset, style, DefaultStyle)
		}
	}
}

func TestNormalizeStyled(t *testing.T) {
	text, style := Styled("-3", "relnum-above").Normalize()
	if text != "-3" || style != "relnum-above" {
		t.Errorf("Normalize = (%q, %q), want (-3, relnum-above)", text, style)
	}

	// An explicitly styled result keeps its tag even when empty.
	text, style = Styled("5", "").Normalize()
	if text != "5" || style != "" {
		t.Errorf("Normalize = (%q, %q), want (5, empty)", text, style)
	}
}

func TestNormalizeBareText(t *testing.T) {
	text, style := Text("7").Normalize()
	if text != "7" {
		t.Errorf("text = %q, want 7", text)
	}
	if style != DefaultStyle {
		t.Errorf("style = %q, want %q", style, DefaultStyle)
	}
}
