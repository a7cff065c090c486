package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"

	"tilecaster/internal/game"
	"tilecaster/internal/geom"
	"tilecaster/internal/telemetry"
	"tilecaster/internal/world"
)

const writeWait = 10 * time.Second

// maxSnapshotPixels caps the size of an on-demand snapshot.
const maxSnapshotPixels = 1920 * 1080

// HTTPServer exposes the room and live players over HTTP and websockets.
type HTTPServer struct {
	gameLoop *game.GameLoop
	view     ViewOptions
	origins  []string
	upgrader websocket.Upgrader
}

// NewHTTPServer creates the HTTP API for a running game loop.
func NewHTTPServer(gl *game.GameLoop, view ViewOptions) *HTTPServer {
	s := &HTTPServer{
		gameLoop: gl,
		view:     view,
		origins:  []string{"*"},
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin:     s.allowOrigin,
	}
	return s
}

// WithCORS limits browser access, REST and websocket alike, to the given
// origins. "*" allows any origin, which is the default.
func (s *HTTPServer) WithCORS(origins []string) *HTTPServer {
	s.origins = origins
	return s
}

// Router builds the chi router with middlewares and routes.
func (s *HTTPServer) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		v1.Get("/room", s.handleRoom)
		v1.Get("/players", s.handlePlayers)
		v1.Get("/snapshot.ppm", s.handleSnapshot)
		v1.Get("/players/{id}/stream", s.handleStream)
	})
	return r
}

// ListenAndServe serves the API on addr.
func (s *HTTPServer) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("HTTP server listening on %s", addr)
	return srv.ListenAndServe()
}

type roomResponse struct {
	Name      string  `json:"name"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	TileSize  int     `json:"tileSize"`
	TileCount int     `json:"tileCount"`
	Textured  bool    `json:"textured"`
	Spawn     poseDTO `json:"spawn"`
	Tiles     [][]int `json:"tiles"`
}

type poseDTO struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

type playerDTO struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Pose    poseDTO `json:"pose"`
	Outcome string  `json:"outcome"`
	Steps   uint64  `json:"steps"`
}

type apiError struct {
	Error string `json:"error"`
}

func toPoseDTO(p world.Pose) poseDTO {
	return poseDTO{X: p.Position.X, Y: p.Position.Y, Angle: p.Angle}
}

func (s *HTTPServer) handleRoom(w http.ResponseWriter, r *http.Request) {
	wd := s.gameLoop.World()
	room := wd.Room
	tiles := make([][]int, room.Height())
	for y := range tiles {
		tiles[y] = make([]int, room.Width())
		for x := range tiles[y] {
			tiles[y][x] = int(room.TileAt(x, y))
		}
	}
	writeJSON(w, http.StatusOK, roomResponse{
		Name:      wd.Name,
		Width:     room.Width(),
		Height:    room.Height(),
		TileSize:  room.TileSize(),
		TileCount: room.TileCount(),
		Textured:  room.HasAtlas(),
		Spawn:     toPoseDTO(wd.Spawn),
		Tiles:     tiles,
	})
}

func (s *HTTPServer) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players := s.gameLoop.Players()
	out := make([]playerDTO, len(players))
	for i, p := range players {
		out[i] = playerDTO{
			ID:      p.ID,
			Name:    p.Name,
			Pose:    toPoseDTO(p.Pose),
			Outcome: p.Outcome.String(),
			Steps:   p.Steps,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSnapshot renders one frame from the pose in the query string and
// returns it as a binary PPM.
func (s *HTTPServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	_, span := telemetry.Tracer("http").Start(r.Context(), "snapshot.render")
	defer span.End()

	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if err := errors.Join(errX, errY); err != nil {
		errorJSON(w, http.StatusBadRequest, "x and y must be numbers")
		return
	}
	angle := 0.0
	if a := q.Get("angle"); a != "" {
		var err error
		if angle, err = strconv.ParseFloat(a, 64); err != nil {
			errorJSON(w, http.StatusBadRequest, "angle must be a number")
			return
		}
	}
	opts := s.view
	if v, err := strconv.Atoi(q.Get("w")); err == nil {
		opts.Width = v
	}
	if v, err := strconv.Atoi(q.Get("h")); err == nil {
		opts.Height = v
	}
	if !snapshotSizeOK(opts.Width, opts.Height) {
		errorJSON(w, http.StatusBadRequest, "invalid snapshot size")
		return
	}

	pos := geom.V(x, y)
	if !pos.Finite() {
		errorJSON(w, http.StatusBadRequest, "position must be finite")
		return
	}
	room := s.gameLoop.World().Room
	cx, cy := pos.Cell()
	if _, err := room.Lookup(cx, cy); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(
		attribute.Float64("pose.x", x),
		attribute.Float64("pose.y", y),
		attribute.Float64("pose.angle", angle),
		attribute.Int("frame.width", opts.Width),
		attribute.Int("frame.height", opts.Height),
	)

	fb := newViewer(opts).render(room, world.NewPose(pos, angle))
	var buf bytes.Buffer
	if err := fb.EncodePPM(&buf); err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/x-portable-pixmap")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleStream upgrades to a websocket and sends the named player's view as a
// binary PPM message every tick until either side goes away.
func (s *HTTPServer) handleStream(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "id")
	if _, ok := s.gameLoop.Player(playerID); !ok {
		errorJSON(w, http.StatusNotFound, "player not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	spectatorID, states := s.gameLoop.Spectate()
	defer s.gameLoop.Unspectate(spectatorID)
	log.Printf("Stream opened: player %s (spectator %s)", playerID, spectatorID)

	// Reader: drains control frames and notices when the client closes.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	view := newViewer(s.view)
	var buf bytes.Buffer
	for {
		select {
		case <-closed:
			return
		case state, ok := <-states:
			if !ok {
				return
			}
			me, ok := state.Player(playerID)
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "player left"))
				return
			}
			buf.Reset()
			if err := view.render(state.World.Room, me.Pose).EncodePPM(&buf); err != nil {
				log.Printf("Stream %s: encode: %v", spectatorID, err)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
				return
			}
		}
	}
}

// snapshotSizeOK bounds each dimension before multiplying so huge values
// cannot overflow past the pixel cap.
func snapshotSizeOK(w, h int) bool {
	return w > 0 && h > 0 && w <= maxSnapshotPixels && h <= maxSnapshotPixels/w
}

// allowOrigin applies the CORS origin list to websocket upgrades. Requests
// without an Origin header are not from a browser and are allowed.
func (s *HTTPServer) allowOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.origins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg})
}
