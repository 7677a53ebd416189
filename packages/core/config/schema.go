package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// settingsSchema describes the settings file. Enumerated values are checked
// by Validate.
const settingsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "file":     {"type": "string"},
    "quote":    {"type": "string"},
    "export":   {"type": "boolean"},
    "format":   {"type": "string"},
    "override": {"type": "boolean"},
    "verbose":  {"type": "boolean"},
    "noColor":  {"type": "boolean"}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(settingsSchema)

// validateSchema rejects unknown keys and mistyped values in a settings file.
func validateSchema(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}

	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(errs, "; "))
}
