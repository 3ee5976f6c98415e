package script

import (
	"errors"
	"testing"

	"github.com/dshills/relnum/internal/format"
)

func TestCompileAndFormatBareText(t *testing.T) {
	f, err := Compile(`
		function format(offset)
			return tostring(math.abs(offset))
		end
	`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer f.Close()

	res, err := f.Func()(-7)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	text, style := res.Normalize()
	if text != "7" {
		t.Errorf("text = %q, want 7", text)
	}
	if style != format.DefaultStyle {
		t.Errorf("style = %q, want default", style)
	}
}

func TestFormatStyledPair(t *testing.T) {
	f, err := Compile(`
		function format(offset)
			if offset < 0 then
				return tostring(-offset), "relnum-above"
			end
			return tostring(offset), "relnum-below"
		end
	`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer f.Close()

	res, err := f.Func()(-2)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	text, style := res.Normalize()
	if text != "2" || style != "relnum-above" {
		t.Errorf("format(-2) = (%q, %q), want (2, relnum-above)", text, style)
	}

	res, err = f.Func()(3)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	text, style = res.Normalize()
	if text != "3" || style != "relnum-below" {
		t.Errorf("format(3) = (%q, %q), want (3, relnum-below)", text, style)
	}
}

func TestNumberReturnCoerces(t *testing.T) {
	f, err := Compile(`
		function format(offset)
			return math.abs(offset)
		end
	`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer f.Close()

	res, err := f.Func()(-5)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	text, _ := res.Normalize()
	if text != "5" {
		t.Errorf("text = %q, want 5", text)
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile(`this is not lua`); err == nil {
		t.Error("expected syntax error")
	}

	_, err := Compile(`x = 1`)
	if !errors.Is(err, ErrNoFormatFunction) {
		t.Errorf("missing function error = %v, want ErrNoFormatFunction", err)
	}

	_, err = Compile(`format = "not a function"`)
	if !errors.Is(err, ErrNoFormatFunction) {
		t.Errorf("non-function global error = %v, want ErrNoFormatFunction", err)
	}
}

func TestRuntimeErrorPropagates(t *testing.T) {
	f, err := Compile(`
		function format(offset)
			error("deliberate failure")
		end
	`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer f.Close()

	if _, err := f.Func()(1); err == nil {
		t.Error("expected runtime error to propagate")
	}
}

func TestBadReturnValues(t *testing.T) {
	f, err := Compile(`
		function format(offset)
			return {offset}
		end
	`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer f.Close()

	if _, err := f.Func()(1); !errors.Is(err, ErrBadReturn) {
		t.Errorf("table return error = %v, want ErrBadReturn", err)
	}

	g, err := Compile(`
		function format(offset)
			return "1", "tag", "extra"
		end
	`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer g.Close()

	if _, err := g.Func()(1); !errors.Is(err, ErrBadReturn) {
		t.Errorf("three-value return error = %v, want ErrBadReturn", err)
	}
}

func TestClosedFormatter(t *testing.T) {
	f, err := Compile(`
		function format(offset)
			return "1"
		end
	`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	f.Close()
	f.Close() // double close is safe

	if _, err := f.Func()(1); !errors.Is(err, ErrFormatterClosed) {
		t.Errorf("closed formatter error = %v, want ErrFormatterClosed", err)
	}
}

func TestSandboxExcludesIO(t *testing.T) {
	f, err := Compile(`
		function format(offset)
			if io ~= nil or os ~= nil then
				return "leaked"
			end
			return "clean"
		end
	`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer f.Close()

	res, err := f.Func()(0)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	text, _ := res.Normalize()
	if text != "clean" {
		t.Error("io or os library leaked into the sandbox")
	}
}
