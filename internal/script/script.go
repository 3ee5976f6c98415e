// Package script compiles user-written Lua into an annotation formatter.
// A script defines a global function
//
//	function format(offset)
//	  return text        -- default style
//	  -- or
//	  return text, style -- explicit style tag
//	end
//
// which is called once per visible, non-suppressed line with the signed
// cursor offset. The Lua state is owned by the Formatter and must only be
// used from the host's single event thread; the engine's execution model
// guarantees renders never overlap.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/relnum/internal/format"
)

// FunctionName is the global the script must define.
const FunctionName = "format"

// Formatter wraps a compiled Lua format function.
type Formatter struct {
	state  *lua.LState
	fn     *lua.LFunction
	closed bool
}

// Compile loads the Lua source and resolves its format function.
// Only the base, table, string, and math libraries are opened; scripts
// have no io, os, or module loading access.
func Compile(src string) (*Formatter, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("format script: %w", err)
	}

	fn, ok := L.GetGlobal(FunctionName).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, ErrNoFormatFunction
	}

	return &Formatter{state: L, fn: fn}, nil
}

// openSafeLibraries opens only side-effect-free Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Intentionally not opened: io, os, debug, package.
}

// Func returns the formatter as a format.Func for the engine.
func (f *Formatter) Func() format.Func {
	return f.format
}

// Close releases the Lua state. The formatter errors on further use.
func (f *Formatter) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.state.Close()
}

func (f *Formatter) format(offset int) (format.Result, error) {
	if f.closed {
		return format.Result{}, ErrFormatterClosed
	}

	L := f.state
	base := L.GetTop()
	defer L.SetTop(base)

	L.Push(f.fn)
	L.Push(lua.LNumber(offset))
	if err := L.PCall(1, lua.MultRet, nil); err != nil {
		return format.Result{}, fmt.Errorf("format(%d): %w", offset, err)
	}

	nret := L.GetTop() - base
	switch nret {
	case 1:
		text, err := asString(L.Get(base + 1))
		if err != nil {
			return format.Result{}, fmt.Errorf("format(%d): %w", offset, err)
		}
		return format.Text(text), nil
	case 2:
		text, err := asString(L.Get(base + 1))
		if err != nil {
			return format.Result{}, fmt.Errorf("format(%d): %w", offset, err)
		}
		style, err := asString(L.Get(base + 2))
		if err != nil {
			return format.Result{}, fmt.Errorf("format(%d) style: %w", offset, err)
		}
		return format.Styled(text, style), nil
	default:
		return format.Result{}, fmt.Errorf("format(%d): %w: %d values", offset, ErrBadReturn, nret)
	}
}

// asString converts a Lua return value to a Go string. Numbers coerce the
// way Lua itself would; everything else is rejected.
func asString(lv lua.LValue) (string, error) {
	switch v := lv.(type) {
	case lua.LString:
		return string(v), nil
	case lua.LNumber:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrBadReturn, lv.Type().String())
	}
}
