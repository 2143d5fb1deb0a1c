// Package server exposes the gitfolio HTTP API: profile cards with view
// counts, the global counter, and provider quota passthrough.
package server

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkarlovic/gitfolio/internal/views"
	"github.com/mkarlovic/gitfolio/pkg/github"
)

// Server wires the profile pipeline and view counter behind a chi router.
type Server struct {
	github   *github.Client
	profiles *github.ProfileCache
	counter  *views.Counter
	log      *log.Logger
}

// New assembles the server. All collaborators are required except profiles,
// which defaults to a fresh cache.
func New(gh *github.Client, profiles *github.ProfileCache, counter *views.Counter, logger *log.Logger) *Server {
	if profiles == nil {
		profiles = github.NewProfileCache(github.DefaultProfileTTL)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		github:   gh,
		profiles: profiles,
		counter:  counter,
		log:      logger,
	}
}

// Handler builds the routed http.Handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/profile/{username}", s.handleProfile)
		r.Get("/views", s.handleGlobalViews)
		r.Get("/ratelimit", s.handleRateLimit)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// profileResponse is the page payload: the normalized profile plus the
// already-incremented view counts.
type profileResponse struct {
	Username    string          `json:"username"`
	Profile     *github.Profile `json:"profile"`
	Views       int             `json:"views"`
	GlobalViews int             `json:"globalViews"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := github.CleanHandle(chi.URLParam(r, "username"))

	// View counting runs regardless of whether the profile fetch succeeds
	// and can never fail the page; the worst case is a count of zero.
	result := s.counter.HandleProfileView(ctx, username, requestJar{r: r, w: w}, clientIP(r))

	profile := s.profiles.Get(username)
	if profile == nil {
		fetched, err := s.github.FetchProfile(ctx, username)
		if err != nil {
			s.writeFetchError(w, err)
			return
		}
		profile = fetched
		s.profiles.Set(username, profile)
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Username:    username,
		Profile:     profile,
		Views:       result.Views,
		GlobalViews: result.GlobalViews,
	})
}

func (s *Server) handleGlobalViews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.counter.GlobalViews(r.Context()))
}

func (s *Server) handleRateLimit(w http.ResponseWriter, r *http.Request) {
	limit, err := s.github.CheckRateLimit(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "rate limit status unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, limit)
}

// writeFetchError maps the fetch taxonomy onto HTTP statuses and the
// user-facing message.
func (s *Server) writeFetchError(w http.ResponseWriter, err error) {
	var fe *github.FetchError
	if !errors.As(err, &fe) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to fetch GitHub profile"})
		return
	}

	status := http.StatusBadGateway
	switch fe.Kind {
	case github.KindNotFound:
		status = http.StatusNotFound
	case github.KindRateLimit:
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, errorResponse{Error: fe.UserMessage()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// clientIP strips the port from the remote address. Behind a proxy,
// middleware.RealIP has already rewritten it from the forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// requestJar adapts an in-flight request/response pair to views.CookieJar.
type requestJar struct {
	r *http.Request
	w http.ResponseWriter
}

func (j requestJar) Get(name string) string {
	c, err := j.r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func (j requestJar) Set(c *http.Cookie) error {
	if err := c.Valid(); err != nil {
		return err
	}
	http.SetCookie(j.w, c)
	return nil
}
