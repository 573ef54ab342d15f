// Web server for go-threestage
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-threestage/internal/config"
	"github.com/go-while/go-threestage/internal/web"
)

var (
	// command-line flags
	webhost         string
	webport         int
	webssl          bool
	webcertFile     string
	webkeyFile      string
	templatesDir    string
	staticDir       string
	debug           bool
	shutdownTimeout time.Duration
	pprofAddr       string
)

var appVersion = "-unset-"

var Prof *prof.Profiler

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&webhost, "webhost", "", "Web server listen host (default: all interfaces)")
	flag.IntVar(&webport, "webport", 0, "Web server port (default: 11980 (no ssl) or 19443 (webssl))")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&templatesDir, "templates", "", "Load templates from this directory instead of the embedded ones")
	flag.StringVar(&staticDir, "static", "", "Serve static files from this directory instead of the embedded ones")
	flag.BoolVar(&debug, "debug", false, "Run gin in debug mode")
	flag.DurationVar(&shutdownTimeout, "shutdown-timeout", config.DefaultShutdownTimeout, "Graceful shutdown timeout")
	flag.StringVar(&pprofAddr, "pprof", "", "Start the CPU/memory profiler web UI on this address (e.g. :51111)")
	flag.Parse()

	mainConfig := config.NewDefaultConfig()
	log.Printf("Starting go-threestage: Web Server (version: %s)", appVersion)

	// Override config with command-line flags if provided
	webConfig := mainConfig.Web
	webConfig.ListenHost = webhost
	if webport > 0 {
		webConfig.ListenPort = webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", webConfig.ListenPort)
	} else if webssl {
		webConfig.ListenPort = config.DefaultSSLListenPort
	}
	if webssl {
		webConfig.SSL = true
		webConfig.CertFile = webcertFile
		webConfig.KeyFile = webkeyFile
		log.Printf("[WEB]: SSL enabled via command-line flag (cert: %s, key: %s)", webcertFile, webkeyFile)
	}
	webConfig.TemplatesDir = templatesDir
	webConfig.StaticDir = staticDir
	webConfig.Debug = debug
	if shutdownTimeout > 0 {
		webConfig.ShutdownTimeout = shutdownTimeout
	} else {
		log.Printf("[WEB]: Shutdown timeout %s invalid, using default %s", shutdownTimeout, config.DefaultShutdownTimeout)
	}
	webConfig.PprofAddr = pprofAddr

	if err := webConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}
	log.Printf("[WEB]: Using WEB configuration: %#v", webConfig)

	if webConfig.Debug {
		gin.SetMode(gin.DebugMode)
		if files, err := web.ListEmbeddedFiles(); err == nil {
			log.Printf("[WEB]: Embedded files: %v", files)
		}
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if webConfig.PprofAddr != "" {
		Prof = prof.NewProf()
		go Prof.PprofWeb(webConfig.PprofAddr)
		Prof.StartMemProfile(5*time.Minute, 30*time.Second)
		log.Printf("[WEB]: Profiler listening on %s", webConfig.PprofAddr)
	}

	templates, err := web.TemplatesFS(webConfig.TemplatesDir)
	if err != nil {
		log.Fatalf("[WEB]: Failed to open templates: %v", err)
	}
	static, err := web.StaticFS(webConfig.StaticDir)
	if err != nil {
		log.Fatalf("[WEB]: Failed to open static files: %v", err)
	}

	server, err := web.NewServer(webConfig, templates, static)
	if err != nil {
		log.Fatalf("[WEB]: Failed to create web server: %v", err)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			webServerErrChan <- err
		}
	}()

	log.Printf("[WEB]: Server started. Press Ctrl+C to gracefully shutdown...")

	select {
	case <-sigChan:
		log.Printf("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Failed to start web server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), webConfig.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[WEB]: Error during shutdown: %v", err)
	}
	log.Printf("[WEB]: Graceful shutdown completed (uptime: %s)", server.Uptime().Round(time.Second))
} // end main
