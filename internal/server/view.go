package server

import (
	"fmt"

	"tilecaster/internal/game"
	"tilecaster/internal/raycast"
	"tilecaster/internal/render"
	"tilecaster/internal/world"
)

// ViewOptions sizes the first-person view rendered for each client.
type ViewOptions struct {
	Width, Height int
	FOV           float64
}

// DefaultViewOptions is a 320x200 view with a 60 degree field of view.
var DefaultViewOptions = ViewOptions{Width: 320, Height: 200, FOV: raycast.DefaultFOV}

// viewer owns one client's framebuffer and caster. Not safe for concurrent use.
type viewer struct {
	caster *raycast.Caster
	fb     *render.Framebuffer
}

func newViewer(opts ViewOptions) *viewer {
	return &viewer{
		caster: raycast.NewCaster(opts.FOV),
		fb:     render.NewFramebuffer(opts.Width, opts.Height),
	}
}

// render draws the view from pose and returns the viewer's framebuffer.
func (v *viewer) render(room *world.Room, pose world.Pose) *render.Framebuffer {
	v.caster.Render(v.fb, room, pose)
	return v.fb
}

// hudLines formats the status bar for a player.
func hudLines(p game.PlayerSnapshot, online int) []string {
	return []string{
		fmt.Sprintf(" %s  pos %.2f,%.2f  facing %.0f°  %s  online %d",
			p.Name, p.Pose.Position.X, p.Pose.Position.Y, p.Pose.Angle, p.Outcome, online),
		" W/S move  A/D strafe  Q/E turn  Esc quit",
	}
}
