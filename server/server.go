package server

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"strings"

	"github.com/dovewell/wellness-server/affiliations"
	"github.com/dovewell/wellness-server/auth"
	"github.com/dovewell/wellness-server/clients"
	"github.com/dovewell/wellness-server/contacts"
	"github.com/dovewell/wellness-server/internal/config"
	"github.com/dovewell/wellness-server/mail"
	"github.com/dovewell/wellness-server/policies"
	"github.com/dovewell/wellness-server/prices"
	"github.com/dovewell/wellness-server/settings"
	"github.com/dovewell/wellness-server/storage"
	"github.com/dovewell/wellness-server/therapies"
	"github.com/dovewell/wellness-server/token"
	"github.com/dovewell/wellness-server/users"
)

// Repos bundles every store the server depends on. Tests swap in the
// repofake implementations.
type Repos struct {
	Users        users.Repo
	Therapies    therapies.Repo
	Prices       prices.Repo
	Contacts     contacts.Repo
	Affiliations affiliations.Repo
	Policies     policies.Repo
	Clients      clients.Repo
	Settings     settings.Repo
}

type Server struct {
	env     string
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	repos   Repos
	tokens  *token.Manager
	auth    *auth.Service
	uploads *storage.Uploads
	mailer  mail.Sender
}

// Option configures optional server collaborators.
type Option func(*Server) error

// WithMailer enables contact-form email notifications.
func WithMailer(mailer mail.Sender) Option {
	return func(s *Server) error {
		s.mailer = mailer
		return nil
	}
}

// WithUploads enables the presigned-upload endpoint.
func WithUploads(uploads *storage.Uploads) Option {
	return func(s *Server) error {
		s.uploads = uploads
		return nil
	}
}

// WithLoginLimiter throttles repeated login attempts per username.
func WithLoginLimiter(limiter auth.LoginLimiter) Option {
	return func(s *Server) error {
		service, err := auth.NewService(s.repos.Users, s.tokens, tokenIssuer(s.tokens, s.config), auth.WithLoginLimiter(limiter))
		if err != nil {
			return err
		}
		s.auth = service
		return nil
	}
}

func New(config config.Config, repos Repos, options ...Option) (*Server, error) {
	tokens, err := token.NewManager(config)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create token manager: %w", err)
	}

	authService, err := auth.NewService(repos.Users, tokens, tokenIssuer(tokens, config))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: config,
		repos:  repos,
		tokens: tokens,
		auth:   authService,
	}
	s.env = config.GetEnv()

	for _, opt := range options {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("[Server New] option failed: %w", err)
		}
	}

	// Bootstrap: make sure at least one admin account exists
	if err := s.EnsureDefaultAdmin(context.Background()); err != nil {
		return nil, fmt.Errorf("[Server New] failed to bootstrap admin user: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func tokenIssuer(tokens *token.Manager, cfg config.AuthConfig) *token.Issuer {
	return token.NewIssuer(tokens, cfg)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + resetColor
	} else {
		displayMethod = gray + paddedMethod + resetColor
	}
	stdlog.Printf("[%-19s] %s\n", displayMethod, path)
}
