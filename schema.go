package apiai

import (
	"fmt"
	"strings"

	"github.com/zoobzio/sentinel"
)

// RequiredKeys lists the JSON keys of T that are not marked omitempty.
// Fields tagged json:"-" are skipped.
func RequiredKeys[T any]() []string {
	metadata := sentinel.Inspect[T]()

	var required []string
	for _, field := range metadata.Fields {
		name := jsonFieldName(field)
		if name == "-" || hasOmitempty(field) {
			continue
		}
		required = append(required, name)
	}
	return required
}

// Conforms checks that body carries every required key of T.
// Only presence is checked, one level deep; pass nested objects separately.
//
// Example:
//
//	if err := apiai.Conforms[apiai.QueryResponse](body); err != nil { ... }
//	result, _ := body["result"].(map[string]any)
//	if err := apiai.Conforms[apiai.Result](result); err != nil { ... }
func Conforms[T any](body map[string]any) error {
	var missing []string
	for _, key := range RequiredKeys[T]() {
		if _, ok := body[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// jsonFieldName extracts the JSON field name from metadata.
func jsonFieldName(field sentinel.FieldMetadata) string {
	if jsonTag, ok := field.Tags["json"]; ok {
		parts := strings.Split(jsonTag, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0]
		}
	}
	return field.Name
}

func hasOmitempty(field sentinel.FieldMetadata) bool {
	if jsonTag, ok := field.Tags["json"]; ok {
		return strings.Contains(jsonTag, "omitempty")
	}
	return false
}
