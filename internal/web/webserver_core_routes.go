// Package web provides the HTTP server and web interface for go-threestage
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-threestage/internal/config"
)

var (
	ErrDuplicateRoute = errors.New("route already registered")
	ErrInvalidRoute   = errors.New("invalid route path")
)

// TrustedProxies are the reverse proxy addresses whose X-Forwarded headers are honored
var TrustedProxies = []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}

// allowedMethods is the Allow header for every exact route
const allowedMethods = "GET, HEAD, OPTIONS"

// WebServer represents the web server
type WebServer struct {
	Router    *gin.Engine
	Config    *config.WebConfig
	StartTime time.Time // Track server start time for uptime calculations

	templates      fs.FS
	static         fs.FS
	routes         map[string]bool // registered exact paths
	trustedProxies []*net.IPNet

	mux        sync.Mutex
	httpServer *http.Server
}

// NewServer creates a new web server instance serving PageRoutes.
// templates and static are the filesystems pages and assets are read from.
func NewServer(webconfig *config.WebConfig, templates, static fs.FS) (*WebServer, error) {
	return NewServerWithRoutes(webconfig, templates, static, PageRoutes)
}

// NewServerWithRoutes creates a new web server instance serving the given page routes
func NewServerWithRoutes(webconfig *config.WebConfig, templates, static fs.FS, pages []PageRoute) (*WebServer, error) {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	// page paths match exactly, "/three-stage/" is not "/three-stage"
	router.RedirectTrailingSlash = false

	// Configure Gin to trust reverse proxy headers
	// Set trusted proxies for common reverse proxy setups (nginx, etc.)
	if err := router.SetTrustedProxies(TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	trusted, err := parseProxies(TrustedProxies)
	if err != nil {
		return nil, err
	}

	// Configure security headers based on SSL setup
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	server := &WebServer{
		Router:    router,
		Config:    webconfig,
		templates: templates,
		static:    static,
		routes:    make(map[string]bool),

		trustedProxies: trusted,
	}

	router.Use(server.ApacheLogFormat(), gin.Recovery())
	router.Use(secure.New(secureConfig))
	router.Use(server.ReverseProxyMiddleware())

	if err := server.setupRoutes(pages); err != nil {
		return nil, err
	}
	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes(pages []PageRoute) error {
	// Static files first
	s.Router.GET(config.StaticPrefix+"/*filepath", s.staticHandler())
	s.Router.HEAD(config.StaticPrefix+"/*filepath", s.staticHandler())

	if err := s.handle("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	}); err != nil {
		return err
	}

	return s.registerPages(pages)
}

// handle registers h for GET and HEAD on an exact path, OPTIONS answers with the Allow header.
// Paths may not carry parameters or wildcards and may only be registered once.
func (s *WebServer) handle(path string, h gin.HandlerFunc) error {
	if !strings.HasPrefix(path, "/") || strings.ContainsAny(path, ":*") || strings.HasPrefix(path, config.StaticPrefix+"/") {
		return fmt.Errorf("%w: %q", ErrInvalidRoute, path)
	}
	if s.routes[path] {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, path)
	}
	s.routes[path] = true
	s.Router.GET(path, h)
	s.Router.HEAD(path, h)
	s.Router.OPTIONS(path, optionsHandler)
	return nil
}

func optionsHandler(c *gin.Context) {
	c.Header("Allow", allowedMethods)
	c.Status(http.StatusOK)
}

// Start listens on the configured address and serves until Shutdown is called
func (s *WebServer) Start() error {
	addr := s.Config.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve serves HTTP (or HTTPS if SSL is configured) on ln.
// It returns http.ErrServerClosed after Shutdown.
func (s *WebServer) Serve(ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mux.Lock()
	s.httpServer = srv
	s.StartTime = time.Now()
	s.mux.Unlock()

	if s.Config.SSL {
		log.Printf("[WEB]: Starting HTTPS server on %s", ln.Addr())
		return srv.ServeTLS(ln, s.Config.CertFile, s.Config.KeyFile)
	}
	log.Printf("[WEB]: Starting HTTP server on %s", ln.Addr())
	return srv.Serve(ln)
}

// Shutdown gracefully stops a running server
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mux.Lock()
	srv := s.httpServer
	s.mux.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Uptime returns how long the server has been serving
func (s *WebServer) Uptime() time.Duration {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime)
}

// ReverseProxyMiddleware handles X-Forwarded headers when running behind a reverse proxy.
// Headers from clients other than TrustedProxies are ignored.
func (s *WebServer) ReverseProxyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.isTrustedProxy(c.RemoteIP()) {
			c.Next()
			return
		}

		// Handle X-Forwarded-Proto to detect if the original request was HTTPS
		if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
			c.Request.URL.Scheme = "https"
		}

		// Handle X-Forwarded-Host to get the original host
		if host := c.GetHeader("X-Forwarded-Host"); host != "" {
			c.Request.Host = host
		}

		c.Next()
	}
}

// isTrustedProxy reports whether remoteIP is one of TrustedProxies
func (s *WebServer) isTrustedProxy(remoteIP string) bool {
	ip := net.ParseIP(remoteIP)
	if ip == nil {
		return false
	}
	for _, cidr := range s.trustedProxies {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// parseProxies turns single addresses and CIDRs into networks
func parseProxies(proxies []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(proxies))
	for _, proxy := range proxies {
		if !strings.Contains(proxy, "/") {
			ip := net.ParseIP(proxy)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", proxy)
			}
			bits := 8 * net.IPv6len
			if ip4 := ip.To4(); ip4 != nil {
				ip, bits = ip4, 8*net.IPv4len
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, cidr, err := net.ParseCIDR(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", proxy, err)
		}
		nets = append(nets, cidr)
	}
	return nets, nil
}

// ApacheLogFormat logs requests in Apache combined log format
func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}
