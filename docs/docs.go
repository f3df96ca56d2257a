// Package docs embeds the OpenAPI description of the editor API.
package docs

import _ "embed"

//go:embed imagemap-studio.openapi.yaml
var OpenAPI []byte
