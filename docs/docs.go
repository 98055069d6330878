// Package docs holds the OpenAPI document of the service.
package docs

import _ "embed"

//go:embed swagger.yml
var SwaggerYAML []byte
