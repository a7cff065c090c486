package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"tilecaster/internal/config"
	"tilecaster/internal/game"
	"tilecaster/internal/input"
	"tilecaster/internal/raycast"
	"tilecaster/internal/render"
	"tilecaster/internal/ui"
	"tilecaster/internal/world"
)

// session is a single local player: it owns the pose, the key hold state and
// the framebuffer.
type session struct {
	screen *ui.Screen
	room   *world.Room
	tuning game.Tuning

	pose    world.Pose
	outcome game.Outcome
	hold    *input.HoldTracker

	caster *raycast.Caster
	fb     *render.Framebuffer
}

func newSession(screen *ui.Screen, w *game.World, cfg config.Config) *session {
	return &session{
		screen: screen,
		room:   w.Room,
		tuning: cfg.Tuning(),
		pose:   w.SpawnPoint(),
		hold:   input.NewHoldTracker(cfg.HoldFrames),
		caster: raycast.NewCaster(cfg.FOV),
		fb:     render.NewFramebuffer(cfg.ScreenWidth, cfg.ScreenHeight),
	}
}

// handle applies one terminal event and reports whether the player quit.
func (s *session) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		b, ok, quit := input.FromKeyEvent(ev)
		if quit {
			return true
		}
		if ok {
			s.hold.Press(b)
		}
	case *tcell.EventResize:
		s.screen.Sync()
		s.draw()
	}
	return false
}

// step advances one frame and reports whether anything needs redrawing.
func (s *session) step() bool {
	next, outcome := game.Step(s.pose, s.hold.Frame(), s.room, s.tuning)
	dirty := next != s.pose || outcome != s.outcome
	s.pose, s.outcome = next, outcome
	return dirty
}

func (s *session) draw() {
	s.caster.Render(s.fb, s.room, s.pose)
	s.screen.Blit(s.fb, []string{
		fmt.Sprintf(" pos %.2f,%.2f  facing %.0f°  %s", s.pose.Position.X, s.pose.Position.Y, s.pose.Angle, s.outcome),
		" W/S move  A/D strafe  Q/E turn  Esc quit",
	})
}
