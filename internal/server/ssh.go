package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"tilecaster/internal/game"
	"tilecaster/internal/input"
	"tilecaster/internal/render"
	"tilecaster/internal/telemetry"
)

// SSHServer wraps the SSH listener and game loop integration.
type SSHServer struct {
	gameLoop *game.GameLoop
	addr     string
	hostKey  string
	view     ViewOptions
	server   *ssh.Server
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, gl *game.GameLoop, view ViewOptions) *SSHServer {
	s := &SSHServer{
		gameLoop: gl,
		addr:     addr,
		hostKey:  hostKey,
		view:     view,
	}
	s.server = &ssh.Server{
		Addr: addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}
	return s
}

// Start begins listening for SSH connections. It returns nil once Close has
// been called.
func (s *SSHServer) Start() error {
	// Set host key
	if err := s.server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	if err := s.server.ListenAndServe(); !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops the listener and drops open sessions.
func (s *SSHServer) Close() error {
	return s.server.Close()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}
	sessionID := uuid.NewString()

	_, span := telemetry.Tracer("ssh").Start(sess.Context(), "ssh.session")
	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("player.name", username),
	)
	defer span.End()

	// Register with game loop (username = identity)
	playerID, renderCh := s.gameLoop.AddPlayer(username)

	log.Printf("Player connected: %s (%s, session %s)", username, playerID, sessionID)
	defer func() {
		s.gameLoop.RemovePlayer(playerID)
		log.Printf("Player disconnected: %s (%s, session %s)", username, playerID, sessionID)
	}()

	// Terminal dimensions
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	engine := render.NewEngine(termW, termH)
	view := newViewer(s.view)

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	quitCh := make(chan struct{})
	go readInput(sess, playerID, s.gameLoop.InputChan(), quitCh)

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	// Main render loop: read from render channel
	for {
		select {
		case <-quitCh:
			return
		case state, ok := <-renderCh:
			if !ok {
				return
			}
			me, ok := state.Player(playerID)
			if !ok {
				continue
			}

			termMu.Lock()
			w, h := termW, termH
			termMu.Unlock()

			fb := view.render(state.World.Room, me.Pose)
			output := engine.Render(fb, hudLines(me, len(state.Players)), w, h)
			if len(output) > 0 {
				io.WriteString(sess, output)
			}
		}
	}
}

// readInput forwards key presses from r to the game loop until a quit key or
// read error, then closes quitCh.
func readInput(r io.Reader, playerID string, inputCh chan<- game.InputEvent, quitCh chan<- struct{}) {
	defer close(quitCh)
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		bindings, quit := input.ParseBytes(buf[:n])
		for _, b := range bindings {
			select {
			case inputCh <- game.InputEvent{PlayerID: playerID, Binding: b}:
			default:
			}
		}
		if quit {
			return
		}
	}
}
