// Package config provides configuration management for go-threestage.
package config

import (
	"errors"
	"fmt"
	"time"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// Default web server settings
	DefaultListenPort      = 11980
	DefaultSSLListenPort   = 19443
	DefaultShutdownTimeout = 10 * time.Second

	// StaticPrefix is the URL prefix static assets are served under
	StaticPrefix = "/static"
)

var (
	ErrInvalidPort    = errors.New("invalid port")
	ErrMissingTLSFile = errors.New("SSL enabled but cert_file or key_file not specified")
	ErrInvalidTimeout = errors.New("invalid shutdown timeout")
)

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenHost      string        `json:"listen_host"`
	ListenPort      int           `json:"listen_port"`
	SSL             bool          `json:"ssl"`
	CertFile        string        `json:"cert_file,omitempty"`
	KeyFile         string        `json:"key_file,omitempty"`
	TemplatesDir    string        `json:"templates_dir,omitempty"` // empty: use embedded templates
	StaticDir       string        `json:"static_dir,omitempty"`    // empty: use embedded static files
	Debug           bool          `json:"debug"`                   // gin debug mode and verbose logging
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	PprofAddr       string        `json:"pprof_addr,omitempty"` // empty: profiler disabled
}

// MainConfig holds the main configuration for go-threestage
type MainConfig struct {
	Web        *WebConfig `json:"web"`
	AppVersion string     `json:"app_version"` // Application version, set at build time
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	return &MainConfig{
		AppVersion: AppVersion,
		Web: &WebConfig{
			ListenPort:      DefaultListenPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
	}
}

// Addr returns the host:port the web server listens on
func (wc *WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", wc.ListenHost, wc.ListenPort)
}

// Validate checks the web config before the server is built
func (wc *WebConfig) Validate() error {
	if wc.ListenPort < 1024 || wc.ListenPort > 65535 {
		return fmt.Errorf("%w: %d (must be between 1024 and 65535)", ErrInvalidPort, wc.ListenPort)
	}
	if wc.SSL && (wc.CertFile == "" || wc.KeyFile == "") {
		return ErrMissingTLSFile
	}
	if wc.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, wc.ShutdownTimeout)
	}
	return nil
}
