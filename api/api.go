// Package api carries the OpenAPI document served under /api/docs.
package api

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.json
var openapiDoc []byte

// OpenAPIHandler serves the embedded OpenAPI document; the swagger UI points
// its URL option here.
func OpenAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openapiDoc)
	}
}
