// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	commonerrors "nutrition-notifier/internal/common/errors"
	"nutrition-notifier/internal/notify"
)

// LoadRegistry reads and validates a template registry file.
func LoadRegistry(path string) (*TemplateRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	var reg TemplateRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, commonerrors.NewTemplateRegistryInvalidError(err.Error())
	}
	return &reg, nil
}

// LoadCatalog builds a notification catalog from a registry file.
func LoadCatalog(path string) (*notify.Catalog, error) {
	reg, err := LoadRegistry(path)
	if err != nil {
		return nil, err
	}

	templates := make(map[notify.Category]notify.Template, len(reg.Templates))
	for name, def := range reg.Templates {
		templates[notify.Category(name)] = notify.Template{
			Title:   def.Title,
			Body:    def.Body,
			Payload: def.Payload,
		}
	}
	return notify.NewCatalog(templates), nil
}

// validate checks the raw document against the registry schema so a typo in
// an operator-supplied file fails at startup, not at render time.
func validate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(registrySchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return commonerrors.NewTemplateRegistryInvalidError(err.Error())
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return commonerrors.NewTemplateRegistryInvalidError(fmt.Sprintf("%v", errs))
	}

	return nil
}
