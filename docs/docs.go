// Package docs carries the OpenAPI description of the HTTP API.
package docs

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPI []byte

// YAML returns the OpenAPI document as written.
func YAML() []byte {
	return openAPI
}

// Spec decodes the OpenAPI document into a JSON-encodable tree.
func Spec() (map[string]interface{}, error) {
	var spec map[string]interface{}
	if err := yaml.Unmarshal(openAPI, &spec); err != nil {
		return nil, fmt.Errorf("decode openapi document: %w", err)
	}
	return spec, nil
}
