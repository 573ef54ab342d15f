package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func TestPageTitle(t *testing.T) {
	caser := cases.Title(language.English)

	testCases := map[string]string{
		"three-stage.html": "Three Stage",
		"index.html":       "Index",
		"about_us.html":    "About Us",
		"plain":            "Plain",
	}
	for name, want := range testCases {
		assert.Equal(t, want, pageTitle(name, caser), name)
	}
}

func TestPageRoutesAreExactAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, route := range PageRoutes {
		assert.NotContains(t, route.Path, ":")
		assert.NotContains(t, route.Path, "*")
		assert.False(t, seen[route.Path], route.Path)
		seen[route.Path] = true
	}
	assert.Len(t, PageRoutes, 2)
}

func TestListEmbeddedFiles(t *testing.T) {
	files, err := ListEmbeddedFiles()
	assert.NoError(t, err)
	assert.Contains(t, files, "templates/index.html")
	assert.Contains(t, files, "templates/three-stage.html")
	assert.Contains(t, files, "templates/error.html")
	assert.Contains(t, files, "static/js/index.js")
	assert.Contains(t, files, "static/three-stage.js")
}
