// Package compose suggests reliability and resource improvements for
// docker-compose service definitions. Only the services mapping is
// inspected; this is not a general compose validator.
package compose

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrParse indicates the compose document is not valid YAML mapping syntax.
var ErrParse = errors.New("compose document is not valid yaml")

// Suggestion is one free-text improvement for a named service.
type Suggestion struct {
	Service string `json:"service"`
	Message string `json:"message"`
}

func (s Suggestion) String() string {
	return fmt.Sprintf("service %s: %s", s.Service, s.Message)
}

// Advise parses a compose document and emits per-service suggestions in
// declaration order: a resource-limits suggestion when a service has no
// deploy key and a healthcheck suggestion when it has no healthcheck key.
// A missing or malformed services mapping yields an empty list, not an
// error; a document that is not YAML at all yields ErrParse.
func Advise(data []byte) ([]Suggestion, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	services := servicesNode(&doc)
	if services == nil || services.Kind != yaml.MappingNode {
		return nil, nil
	}

	var suggestions []Suggestion
	// Mapping node content alternates key, value; iterating it preserves
	// the document's declaration order.
	for i := 0; i+1 < len(services.Content); i += 2 {
		name := services.Content[i].Value
		service := services.Content[i+1]
		if service.Kind != yaml.MappingNode {
			continue
		}

		if !hasKey(service, "deploy") {
			suggestions = append(suggestions, Suggestion{
				Service: name,
				Message: "add a deploy section with resource limits",
			})
		}
		if !hasKey(service, "healthcheck") {
			suggestions = append(suggestions, Suggestion{
				Service: name,
				Message: "add a healthcheck so failures are detected",
			})
		}
	}

	return suggestions, nil
}

func servicesNode(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "services" {
			return root.Content[i+1]
		}
	}
	return nil
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}
