// Package web provides the HTTP server and web interface for go-threestage
package web

/*

	### **Core Files:**
	1. **`webserver_core_routes.go`** - Server setup, middleware, route registration, start/shutdown
	2. **`web_utils.go`** - Template loading and rendering, error pages
	3. **`embedded_static.go`** - Embedded templates/static files and the static file handler

	### **Page Handler Files:**
	4. **`web_pages.go`** - Page route table ("/" and "/three-stage") and the page handler

*/
