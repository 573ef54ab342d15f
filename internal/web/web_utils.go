package web

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-threestage/internal/config"
)

// TemplateData represents common template data
type TemplateData struct {
	Title        string
	AppVersion   string
	StaticPrefix string
}

// GetPort returns the listening port from the config
func (s *WebServer) GetPort() int {
	return s.Config.ListenPort
}

// getBaseTemplateData creates a TemplateData struct with common information
func (s *WebServer) getBaseTemplateData(title string) TemplateData {
	return TemplateData{
		Title:        title,
		AppVersion:   config.AppVersion,
		StaticPrefix: config.StaticPrefix,
	}
}

// executeTemplate reads name from the template filesystem and renders it with data.
// Templates are read on every call so edits on disk show up without a restart.
func (s *WebServer) executeTemplate(name string, data interface{}) ([]byte, error) {
	content, err := fs.ReadFile(s.templates, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrTemplateNotFound{Name: name}
		}
		return nil, ErrTemplateExecution{Name: name, Err: err}
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, ErrTemplateExecution{Name: name, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, ErrTemplateExecution{Name: name, Err: err}
	}
	return buf.Bytes(), nil
}

// renderTemplate renders a template as the response body
func (s *WebServer) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	body, err := s.executeTemplate(templateName, data)
	if err != nil {
		var notFound ErrTemplateNotFound
		if errors.As(err, &notFound) {
			s.renderError(c, http.StatusInternalServerError, "Template not found", err.Error())
			return
		}
		s.renderError(c, http.StatusInternalServerError, "Template error", err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// renderError renders an error page
func (s *WebServer) renderError(c *gin.Context, statusCode int, message string, errstring string) {
	errorData := struct {
		TemplateData
		Error      string
		StatusCode int
	}{
		TemplateData: s.getBaseTemplateData("Error"),
		Error:        message,
		StatusCode:   statusCode,
	}
	log.Printf("[ERROR]: Error %d: %s - %s", statusCode, message, errstring)

	body, err := s.executeTemplate("error.html", errorData)
	if err != nil {
		log.Printf("[ERROR]: Error rendering error template: %v", err)
		c.String(statusCode, "Error: %s", message)
		c.Abort()
		return
	}
	c.Data(statusCode, "text/html; charset=utf-8", body)
	c.Abort()
}
