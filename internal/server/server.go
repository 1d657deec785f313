// Package server implements the interactive mode addressed by spec §9's
// open question (SPEC_FULL §4.M): an HTTP+WebSocket front end that
// re-renders a watched scene file and pushes the results to subscribed
// clients.
package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"github.com/basalt-render/raymarch/internal/platform"
	"github.com/basalt-render/raymarch/pkg/build"
	"github.com/basalt-render/raymarch/pkg/encode"
	"github.com/basalt-render/raymarch/pkg/renderer"
	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

// watchInterval is the file-watcher's polling period. No fsnotify-style
// dependency appears anywhere in the example pack, so mtime polling via
// time.Ticker is the grounded approach (SPEC_FULL §4.M).
const watchInterval = 500 * time.Millisecond

// Server serves the last render over HTTP and pushes new ones over
// WebSocket as the watched scene file changes.
type Server struct {
	cfg     *platform.Config
	logger  platform.Logger
	threads int

	scenePath string

	hub *hub

	mu       sync.RWMutex
	lastPNG  []byte
	lastMeta string
}

// New constructs a Server that renders scenePath with threads workers.
func New(cfg *platform.Config, logger platform.Logger, threads int, scenePath string) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		threads:   threads,
		scenePath: scenePath,
		hub:       newHub(logger),
	}
}

// ListenAndServe starts the HTTP server and the scene-file watcher; it
// blocks until the server errors or is stopped.
func (s *Server) ListenAndServe() error {
	if s.scenePath != "" {
		if err := s.rerender(); err != nil {
			s.logger.Printf("initial render failed: %v", err)
		}
		go s.watchScene()
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/api/scene", s.handleLatest).Methods(http.MethodGet)
	r.HandleFunc("/api/render", s.handleRenderNow).Methods(http.MethodPost)
	r.HandleFunc("/ws", s.handleWebSocket)

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Printf("interactive server listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	png := s.lastPNG
	s.mu.RUnlock()
	if png == nil {
		http.Error(w, "no render available yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

type renderRequest struct {
	ScenePath string `json:"scenePath"`
}

func (s *Server) handleRenderNow(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.ScenePath != "" {
		s.scenePath = req.ScenePath
	}
	if err := s.rerender(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Printf("websocket accept: %v", err)
		return
	}
	c := s.hub.register(conn)
	defer s.hub.unregister(c)
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()
	s.sendSnapshot(ctx, c)
	c.writePump(ctx)
}

func (s *Server) sendSnapshot(ctx context.Context, c *client) {
	s.mu.RLock()
	png, meta := s.lastPNG, s.lastMeta
	s.mu.RUnlock()
	if png == nil {
		return
	}
	msg := pushMessage{
		Scene: s.scenePath,
		Outputs: []Output{{
			Name: meta, Type: "file",
			Content: base64.StdEncoding.EncodeToString(png),
		}},
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	c.conn.Write(writeCtx, websocket.MessageText, payload)
}

func (s *Server) watchScene() {
	var lastMod time.Time
	if info, err := os.Stat(s.scenePath); err == nil {
		lastMod = info.ModTime()
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for range ticker.C {
		info, err := os.Stat(s.scenePath)
		if err != nil {
			continue
		}
		if !info.ModTime().After(lastMod) {
			continue
		}
		lastMod = info.ModTime()
		if err := s.rerender(); err != nil {
			s.logger.Printf("re-render after change to %s: %v", s.scenePath, err)
		}
	}
}

// rerender parses, builds, and renders every target in s.scenePath, caching
// the first file target's PNG bytes for /api/scene and pushing an update to
// every connected client.
func (s *Server) rerender() error {
	src, err := os.ReadFile(s.scenePath)
	if err != nil {
		return fmt.Errorf("read scene file: %w", err)
	}
	p, err := sexpr.NewParser(string(src))
	if err != nil {
		return err
	}
	forms, err := p.ParseAll()
	if err != nil {
		return err
	}
	scn, err := build.Build(forms)
	if err != nil {
		return err
	}

	outputs := make([]Output, 0, len(scn.Targets()))
	var firstPNG []byte
	var firstName string
	for i, target := range scn.Targets() {
		buf := renderer.Render(scn, target, s.threads, nil)
		cam := scn.GetCamera(target.Camera)
		name := fmt.Sprintf("target-%d", i)

		switch target.Kind {
		case store.TargetFile:
			var out bytes.Buffer
			if err := encode.EncodePNG(&out, cam.Width, cam.Height, buf); err != nil {
				return err
			}
			if firstPNG == nil {
				firstPNG, firstName = out.Bytes(), name
			}
			outputs = append(outputs, Output{Name: name, Type: "file", Content: base64.StdEncoding.EncodeToString(out.Bytes())})
		default:
			var out bytes.Buffer
			if err := encode.WriteASCII(&out, cam.Width, cam.Height, buf); err != nil {
				return err
			}
			outputs = append(outputs, Output{Name: name, Type: "ascii", Content: out.String()})
		}
	}

	if firstPNG != nil {
		s.mu.Lock()
		s.lastPNG, s.lastMeta = firstPNG, firstName
		s.mu.Unlock()
	}
	s.hub.broadcast(s.scenePath, outputs)
	return nil
}
