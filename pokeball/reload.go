package pokeball

import (
	"fmt"

	"github.com/milk9111/pokeball/prefabs"
	"github.com/milk9111/pokeball/scene"
)

// Swap builds a ball from spec and puts it in sc in place of old, keeping the
// old yaw. On error sc is left as it was.
func Swap(sc *scene.Scene, old *scene.Node, spec *prefabs.PokeballSpec) (*scene.Node, error) {
	if sc == nil {
		return nil, fmt.Errorf("pokeball: swap into nil scene")
	}
	ball, err := Build(spec, sc.Environment)
	if err != nil {
		return nil, err
	}
	if old != nil {
		ball.Rotation[1] = old.Rotation[1]
		sc.Root.Remove(old)
	}
	sc.Add(ball)
	return ball, nil
}

// Reload rereads pokeball.yaml, preferring the copy on disk, and swaps the
// result into sc.
func Reload(sc *scene.Scene, old *scene.Node) (*scene.Node, *prefabs.PokeballSpec, error) {
	spec, err := prefabs.LoadPokeballSpec()
	if err != nil {
		return nil, nil, err
	}
	ball, err := Swap(sc, old, spec)
	if err != nil {
		return nil, nil, err
	}
	return ball, spec, nil
}
