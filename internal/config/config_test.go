package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NotNil(t, cfg.Web)
	assert.Equal(t, DefaultListenPort, cfg.Web.ListenPort)
	assert.False(t, cfg.Web.SSL)
	assert.Empty(t, cfg.Web.TemplatesDir)
	assert.Empty(t, cfg.Web.StaticDir)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Web.ShutdownTimeout)
	assert.NoError(t, cfg.Web.Validate())
}

func TestWebConfigAddr(t *testing.T) {
	wc := &WebConfig{ListenHost: "127.0.0.1", ListenPort: 8080}
	assert.Equal(t, "127.0.0.1:8080", wc.Addr())

	wc.ListenHost = ""
	assert.Equal(t, ":8080", wc.Addr())
}

func TestWebConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     WebConfig
		wantErr error
	}{
		{
			name: "default port",
			cfg:  WebConfig{ListenPort: DefaultListenPort, ShutdownTimeout: time.Second},
		},
		{
			name:    "port too low",
			cfg:     WebConfig{ListenPort: 80},
			wantErr: ErrInvalidPort,
		},
		{
			name:    "port too high",
			cfg:     WebConfig{ListenPort: 70000},
			wantErr: ErrInvalidPort,
		},
		{
			name:    "ssl without cert",
			cfg:     WebConfig{ListenPort: DefaultSSLListenPort, SSL: true, KeyFile: "key.pem"},
			wantErr: ErrMissingTLSFile,
		},
		{
			name: "ssl with cert and key",
			cfg:  WebConfig{ListenPort: DefaultSSLListenPort, SSL: true, CertFile: "cert.pem", KeyFile: "key.pem", ShutdownTimeout: time.Second},
		},
		{
			name:    "zero shutdown timeout",
			cfg:     WebConfig{ListenPort: DefaultListenPort},
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative shutdown timeout",
			cfg:     WebConfig{ListenPort: DefaultListenPort, ShutdownTimeout: -time.Second},
			wantErr: ErrInvalidTimeout,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestWebConfigValidateLeavesConfigUnchanged(t *testing.T) {
	wc := &WebConfig{ListenPort: DefaultListenPort}
	before := *wc
	assert.ErrorIs(t, wc.Validate(), ErrInvalidTimeout)
	assert.Equal(t, before, *wc)
}
