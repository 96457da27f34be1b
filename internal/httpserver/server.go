// internal/httpserver/server.go
//
// HTTP server wiring for the Word Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logging).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /round/new, POST /round/daily (issue a round token).
//   - Token-gated endpoints: GET /round, POST /round/answer, POST /round/reset.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Rejected answers are a normal outcome and answer 200 with the reason;
//     HTTP errors are reserved for bad requests, bad tokens and unknown rounds.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/present"
	"github.com/robalobadob/wordscramble/internal/store"
)

// DictionarySize reports how many entries the active dictionary holds.
type DictionarySize func(ctx context.Context) (int, error)

// Server bundles router, game engine, round store and token issuer.
type Server struct {
	r        *chi.Mux
	game     *game.Game
	store    store.Store
	sessions *Sessions
	origin   string
	dictSize DictionarySize
}

// Option configures a Server.
type Option func(*Server)

// WithClientOrigin sets the single origin allowed by CORS.
func WithClientOrigin(origin string) Option {
	return func(s *Server) { s.origin = origin }
}

// WithDictionarySize reports dictionary size on /debug/words.
func WithDictionarySize(f DictionarySize) Option {
	return func(s *Server) { s.dictSize = f }
}

// New constructs a Server, installs middleware, and registers routes.
func New(g *game.Game, st store.Store, sess *Sessions, opts ...Option) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		game:     g,
		store:    st,
		sessions: sess,
		origin:   "http://localhost:5173",
	}
	for _, o := range opts {
		o(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog())                     // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.corsHandler())                 // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordscramble-go","endpoints":["/health","POST /round/new","POST /round/daily","GET /round","POST /round/answer","POST /round/reset"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleDebugWords)

	s.r.Route("/round", func(r chi.Router) {
		r.Post("/new", s.handleStart(s.game.NewRound))
		r.Post("/daily", s.handleStart(s.game.NewDailyRound))

		r.Group(func(r chi.Router) {
			r.Use(s.requireRound)
			r.Get("/", s.handleGetRound)
			r.Post("/answer", s.handleAnswer)
			r.Post("/reset", s.handleReset)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsHandler allows credentialed requests from the single client origin.
func (s *Server) corsHandler() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{s.origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           600,
	}).Handler
}

func accessLog() func(http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	})
}

// ctxRoundKey is the context key for the request's *game.Round.
type ctxRoundKey struct{}

// requireRound resolves the round token to a stored round.
func (s *Server) requireRound(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.sessions.FromRequest(r)
		if err != nil {
			if errors.Is(err, ErrNoToken) {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			hlog.FromRequest(r).Debug().Err(err).Msg("round token rejected")
			http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		round, err := s.store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, `{"error":"round_not_found"}`, http.StatusNotFound)
				return
			}
			hlog.FromRequest(r).Error().Err(err).Str("round", id).Msg("load round")
			http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxRoundKey{}, round)))
	})
}

func roundFrom(r *http.Request) *game.Round {
	round, _ := r.Context().Value(ctxRoundKey{}).(*game.Round)
	return round
}

// ------------------------------ ROUNDS -------------------------------------

// roundRes is returned by every endpoint that starts or shows a round.
type roundRes struct {
	Token string     `json:"token,omitempty"`
	Round game.State `json:"round"`
}

// handleStart stores a round made by start and issues its token.
func (s *Server) handleStart(start func() *game.Round) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round := start()
		if err := s.store.Save(r.Context(), round); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("save round")
			http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
			return
		}
		st := round.State()
		tok, ok := s.issue(w, r, st.ID)
		if !ok {
			return
		}
		hlog.FromRequest(r).Info().Str("round", st.ID).Str("mode", string(st.Mode)).Msg("round started")
		_ = json.NewEncoder(w).Encode(roundRes{Token: tok, Round: st})
	}
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(roundRes{Round: roundFrom(r).State()})
}

// handleReset replaces the round wholesale and refreshes the token expiry.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	st := s.game.Reset(roundFrom(r))
	tok, ok := s.issue(w, r, st.ID)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(roundRes{Token: tok, Round: st})
}

// answerReq/Res payloads for POST /round/answer.
type answerReq struct {
	Answer string `json:"answer"`
}
type answerRes struct {
	Accepted bool        `json:"accepted"`
	Reason   game.Reason `json:"reason,omitempty"`
	Title    string      `json:"title,omitempty"`
	Message  string      `json:"message,omitempty"`
	Round    game.State  `json:"round"`
}

// maxAnswerBody caps the POST /round/answer payload.
const maxAnswerBody = 1 << 12

// handleAnswer validates one candidate against the caller's round.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAnswerBody)
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, `{"error":"body_too_large"}`, http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	out, st := s.game.Submit(r.Context(), roundFrom(r), req.Answer)
	msg := present.For(out, st.BaseWord)
	_ = json.NewEncoder(w).Encode(answerRes{
		Accepted: out.Accepted,
		Reason:   out.Reason,
		Title:    msg.Title,
		Message:  msg.Body,
		Round:    st,
	})
}

// issue signs a token for roundID and sets the cookie. It writes the error
// response itself and reports false on failure.
func (s *Server) issue(w http.ResponseWriter, r *http.Request, roundID string) (string, bool) {
	tok, exp, err := s.sessions.Sign(roundID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign round token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return "", false
	}
	s.sessions.SetCookie(w, tok, exp)
	return tok, true
}

// handleDebugWords reports word list and dictionary sizes.
func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	res := map[string]int{"baseWords": s.game.Words().Len(), "rounds": s.store.Len()}
	if s.dictSize != nil {
		n, err := s.dictSize(r.Context())
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("dictionary size")
		} else {
			res["dictionary"] = n
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}
