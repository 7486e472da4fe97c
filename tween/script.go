package tween

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptPrefix marks ease names that resolve to compiled scripts.
const ScriptPrefix = "script:"

// CompileScriptEase compiles a tengo source that reads the global `t` and
// assigns the eased value to `out`.
func CompileScriptEase(src []byte) (Ease, error) {
	script := tengo.NewScript(src)
	if err := script.Add("t", 0.0); err != nil {
		return nil, fmt.Errorf("tween: script ease: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("tween: script ease: compile: %w", err)
	}

	// Probe once so a missing `out` fails at load time instead of per frame.
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("tween: script ease: run: %w", err)
	}
	if !compiled.IsDefined("out") {
		return nil, fmt.Errorf("tween: script ease: script does not define out")
	}

	return func(p float64) float64 {
		if err := compiled.Set("t", p); err != nil {
			return p
		}
		if err := compiled.Run(); err != nil {
			return p
		}
		return compiled.Get("out").Float()
	}, nil
}
