package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/shiori/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for shiori.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// HTTPOptions configures the streamable HTTP transport.
type HTTPOptions struct {
	// Addr is the listen address, e.g. "localhost:8080".
	Addr string

	// Password is the shared secret clients send as a bearer token. Required.
	Password string

	// RateLimit is the sustained requests per second. Zero disables throttling.
	RateLimit int

	// Burst is the token bucket size. Raised to 1 when throttling is on.
	Burst int
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "shiori",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP handler for the server: the streamable MCP
// endpoint behind the rate limiter and password gate.
func (s *Server) Handler(opts HTTPOptions) (http.Handler, error) {
	if strings.TrimSpace(opts.Password) == "" {
		return nil, ErrMissingPassword
	}

	var handler http.Handler = mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	handler = requirePassword(opts.Password, handler)

	if opts.RateLimit > 0 {
		burst := max(opts.Burst, 1)
		handler = throttle(rate.NewLimiter(rate.Limit(opts.RateLimit), burst), handler)
	}

	return handler, nil
}

// RunHTTP starts the MCP server over HTTP.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, opts HTTPOptions) error {
	handler, err := s.Handler(opts)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("MCP server listening on %s", opts.Addr)
	err = httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
