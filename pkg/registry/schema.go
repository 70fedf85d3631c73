// pkg/registry/schema.go
package registry

// TemplateRegistry is the on-disk shape of a template catalog override.
type TemplateRegistry struct {
	Version     string                        `json:"version"`
	LastUpdated string                        `json:"lastUpdated,omitempty"`
	Templates   map[string]TemplateDefinition `json:"templates"`
}

// TemplateDefinition is one catalog entry.
type TemplateDefinition struct {
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Payload map[string]string `json:"payload"`
}

// registrySchema validates a registry file before it replaces the built-in
// catalog.
const registrySchema = `{
  "type": "object",
  "required": ["version", "templates"],
  "properties": {
    "version": {"type": "string"},
    "lastUpdated": {"type": "string"},
    "templates": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "required": ["title", "body", "payload"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "body": {"type": "string", "minLength": 1},
          "payload": {
            "type": "object",
            "additionalProperties": {"type": "string"}
          }
        }
      }
    }
  }
}`
