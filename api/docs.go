// Package api embeds the OpenAPI description of the HTTP interface.
package api

import _ "embed"

// OpenAPI is the Swagger 2.0 document served at /swagger/doc.json.
//
//go:embed openapi.json
var OpenAPI []byte
