package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/herdsim/herdsim/internal/component"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for data-driven hooks.
// Single-goroutine access only; it is consulted at startup, never from systems.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"catalog"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// AssetKinds calls Lua asset_kinds() and returns the extra kinds it lists.
// A script set without asset_kinds contributes nothing.
func (e *Engine) AssetKinds() ([]component.AssetKind, error) {
	fn := e.vm.GetGlobal("asset_kinds")
	if fn == lua.LNil {
		return nil, nil
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}); err != nil {
		return nil, fmt.Errorf("lua asset_kinds: %w", err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	tbl, ok := result.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("lua asset_kinds: expected table, got %s", result.Type())
	}
	var kinds []component.AssetKind
	var bad error
	tbl.ForEach(func(_, v lua.LValue) {
		s, ok := v.(lua.LString)
		if !ok || s == "" {
			if bad == nil {
				bad = fmt.Errorf("lua asset_kinds: entry %s is not a kind name", v.String())
			}
			return
		}
		kinds = append(kinds, component.AssetKind(s))
	})
	if bad != nil {
		return nil, bad
	}
	return kinds, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}
