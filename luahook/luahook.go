// Package luahook lets a Lua script react to patternlock signals. A script
// may define either or both of these globals:
//
//	function on_pattern(p)  -- p is an array of point ids
//	  return "message"      -- optional status text
//	end
//
//	function on_cleared()
//	end
//
// Scripts run in a state with only the base, table, string and math
// libraries opened.
package luahook

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/phanxgames/patternlock"
)

const (
	fnPattern = "on_pattern"
	fnCleared = "on_cleared"
)

// ErrClosed is returned when calling into a closed hook.
var ErrClosed = errors.New("luahook: closed")

// Hook is a loaded Lua script. Like gopher-lua's LState it is not safe for
// concurrent use.
type Hook struct {
	L      *lua.LState
	closed bool
}

func newHook() *Hook {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	return &Hook{L: L}
}

// Load runs the script at path and returns the hook.
func Load(path string) (*Hook, error) {
	h := newHook()
	if err := h.do(func() error { return h.L.DoFile(path) }); err != nil {
		h.Close()
		return nil, fmt.Errorf("luahook: load %s: %w", path, err)
	}
	return h, nil
}

// LoadString runs code and returns the hook.
func LoadString(code string) (*Hook, error) {
	h := newHook()
	if err := h.do(func() error { return h.L.DoString(code) }); err != nil {
		h.Close()
		return nil, fmt.Errorf("luahook: load: %w", err)
	}
	return h, nil
}

// Close releases the Lua state.
func (h *Hook) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.L.Close()
}

// OnPattern calls on_pattern with pattern and returns its string result, if
// any. A script without on_pattern returns "" and no error.
func (h *Hook) OnPattern(pattern []int) (string, error) {
	if h.closed {
		return "", ErrClosed
	}
	fn := h.L.GetGlobal(fnPattern)
	if fn.Type() != lua.LTFunction {
		return "", nil
	}
	tbl := h.L.NewTable()
	for _, id := range pattern {
		tbl.Append(lua.LNumber(id))
	}
	var msg string
	err := h.do(func() error {
		if err := h.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, tbl); err != nil {
			return err
		}
		ret := h.L.Get(-1)
		h.L.Pop(1)
		if s, ok := ret.(lua.LString); ok {
			msg = string(s)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("luahook: %s: %w", fnPattern, err)
	}
	return msg, nil
}

// OnCleared calls on_cleared if the script defines it.
func (h *Hook) OnCleared() error {
	if h.closed {
		return ErrClosed
	}
	fn := h.L.GetGlobal(fnCleared)
	if fn.Type() != lua.LTFunction {
		return nil
	}
	err := h.do(func() error {
		return h.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
	})
	if err != nil {
		return fmt.Errorf("luahook: %s: %w", fnCleared, err)
	}
	return nil
}

// Bind registers the hook on l. Script errors are logged through
// patternlock.Logger and otherwise ignored. Remove the returned handles to
// unbind. Messages returned by on_pattern are passed to onMessage when it is
// non-nil.
func (h *Hook) Bind(l *patternlock.Lock, onMessage func(string)) []patternlock.CallbackHandle {
	changed := l.OnPatternChange(func(p []int) {
		if len(p) == 0 {
			return
		}
		msg, err := h.OnPattern(p)
		if err != nil {
			patternlock.Logger().Warn("lua hook failed", "fn", fnPattern, "err", err)
			return
		}
		if msg != "" && onMessage != nil {
			onMessage(msg)
		}
	})
	cleared := l.OnPatternCleared(func() {
		if err := h.OnCleared(); err != nil {
			patternlock.Logger().Warn("lua hook failed", "fn", fnCleared, "err", err)
		}
	})
	return []patternlock.CallbackHandle{changed, cleared}
}

// do runs fn, converting a panic inside the VM into an error.
func (h *Hook) do(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
