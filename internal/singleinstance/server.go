package singleinstance

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Matteo842/SaveState-sub003/internal/collab"
)

// activateCommand is the only command this server recognizes (spec.md §6:
// "Local IPC" — unknown commands are ignored).
const activateCommand = "activate"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  256,
	WriteBufferSize: 256,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server listens on the local wake endpoint and forwards "activate"
// commands to a UICollaborator.
type Server struct {
	ui       collab.UICollaborator
	listener net.Listener
	httpSrv  *http.Server
}

// Listen binds the wake endpoint. The caller must hold the process lock
// before calling Listen: only the lock holder serves the endpoint.
func Listen(ui collab.UICollaborator) (*Server, error) {
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(wakePort()))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &Server{ui: ui, listener: ln}
	mux := http.NewServeMux()
	mux.HandleFunc("/activate", s.handleConn)
	s.httpSrv = &http.Server{Handler: mux}
	return s, nil
}

// Serve blocks, accepting wake connections until ctx is cancelled or the
// listener is closed.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()
	err := s.httpSrv.Serve(s.listener)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (s *Server) handleConn(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		cmd := strings.TrimSpace(strings.ToLower(string(data)))
		if cmd == activateCommand {
			s.ui.ActivateRequested()
		}
		// Unknown commands are ignored, per spec.
	}
}

// Close shuts the endpoint down immediately.
func (s *Server) Close() error {
	return s.listener.Close()
}
