package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"tictac/agent"
	"tictac/communication"
	"tictac/game"
)

// Server answers move requests with freshly built agents.
type Server struct {
	cfg          agent.Config
	defaultAgent string
	router       chi.Router
}

func NewServer(cfg agent.Config, defaultAgent string) *Server {
	if defaultAgent == "" {
		defaultAgent = agent.TicTacProName
	}
	s := &Server{cfg: cfg, defaultAgent: defaultAgent}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/act", s.handleAct)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("agent service listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleAct(w http.ResponseWriter, r *http.Request) {
	var req communication.ActRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		return
	}
	if err := validate(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	name := req.Agent
	if name == "" {
		name = s.defaultAgent
	}
	a, err := agent.New(name, req.Mark, s.cfg)
	if errors.Is(err, agent.ErrUnknownAgent) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	state := req.State()
	env := game.NewEnv()
	env.Load(state)
	if env.Done() {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("board %s: game is over", state.Board))
		return
	}

	action, metric, err := a.Act(state, env)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log.Debug().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("agent", a.Name()).
		Stringer("board", state.Board).
		Int("action", int(action)).
		Int("episodes", metric.Episodes).
		Msg("chose action")
	writeJSON(w, http.StatusOK, communication.ActResponse{Action: action, Agent: a.Name()})
}

func validate(req communication.ActRequest) error {
	if req.Mark != game.O && req.Mark != game.X {
		return fmt.Errorf("invalid mark %q", req.Mark)
	}
	for i, code := range req.Board {
		if code != game.Empty && code != game.OCode && code != game.XCode {
			return fmt.Errorf("invalid code %d at cell %d", code, i)
		}
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote", r.RemoteAddr).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, communication.ErrorResponse{Error: err.Error()})
}
