package interaction

import "github.com/milk9111/pokeball/common"

// Frame advances one display frame: due callbacks and the shake first, then
// tweens, then drag damping or idle spin, then the camera controls.
func (c *Context) Frame() {
	if c.closed {
		return
	}
	c.frames++

	c.scheduler.Run()
	if c.tweens != nil {
		c.tweens.Update()
	}

	if obj := c.object; obj != nil {
		switch {
		case c.dragging && !c.shaking:
			obj.Rotation[0] = common.Lerp(obj.Rotation[0], c.target[0], c.cfg.DragDamping)
			obj.Rotation[1] = common.Lerp(obj.Rotation[1], c.target[1], c.cfg.DragDamping)
		case !c.dragging && !c.shaking && !c.hovering:
			obj.Rotation[1] += c.cfg.AutoSpin
		}
	}

	if c.controls != nil {
		c.controls.Update()
	}
}
