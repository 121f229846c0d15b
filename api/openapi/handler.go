// Package openapi embeds the OpenAPI 3.1 contract for the CSBlueGem API
// and serves it with a Swagger UI page. The mock server mounts these routes
// so the upstream contract is browsable during development.
package openapi

import (
	"embed"
	"net/http"
)

//go:embed openapi.yaml
var specFS embed.FS

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>CSBlueGem API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/openapi.yaml",
      dom_id: "#swagger-ui",
    });
  </script>
</body>
</html>`

// Register adds the spec and Swagger UI routes to mux.
func Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /openapi.yaml", serveSpec)
	mux.HandleFunc("GET /docs", serveUI)
	mux.HandleFunc("GET /docs/{$}", serveUI)
}

func serveSpec(w http.ResponseWriter, _ *http.Request) {
	data, err := specFS.ReadFile("openapi.yaml")
	if err != nil {
		http.Error(w, "spec not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/yaml")
	//nolint:errcheck,gosec // best-effort write to HTTP response
	w.Write(data)
}

func serveUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:errcheck,gosec // best-effort write to HTTP response
	w.Write([]byte(swaggerUIHTML))
}
