package web

import (
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PageRoute maps an exact request path to the template rendered for it
type PageRoute struct {
	Path     string
	Template string
	Title    string // optional, derived from Template when empty
}

// PageRoutes are the static pages served by go-threestage
var PageRoutes = []PageRoute{
	{Path: "/", Template: "index.html", Title: "Home"},
	{Path: "/three-stage", Template: "three-stage.html"},
}

// registerPages adds a GET/HEAD handler for every page route
func (s *WebServer) registerPages(routes []PageRoute) error {
	// cases.Caser is stateful, titles are computed once here
	caser := cases.Title(language.English)
	for _, route := range routes {
		if route.Title == "" {
			route.Title = pageTitle(route.Template, caser)
		}
		if err := s.handle(route.Path, s.pageHandler(route)); err != nil {
			return err
		}
	}
	return nil
}

// pageHandler renders the route's template. The request itself is not read.
func (s *WebServer) pageHandler(route PageRoute) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.renderTemplate(c, route.Template, s.getBaseTemplateData(route.Title))
	}
}

// pageTitle turns "three-stage.html" into "Three Stage"
func pageTitle(name string, caser cases.Caser) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return caser.String(base)
}
