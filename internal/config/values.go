package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/model"
)

// LoadValues reads a JSON or YAML document of raw field values, the format the
// validate command accepts.
func LoadValues(path string) (map[model.FieldName]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseValues(data, path)
}

// ParseValues decodes raw field values. Scalars of any type are kept as their
// textual form so the validator sees what a form post would carry; null
// becomes the empty string.
func ParseValues(data []byte, source string) (map[model.FieldName]string, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("config: values file %s is empty", source)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = nil
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", source, err)
		}
	}

	out := make(map[model.FieldName]string, len(doc))
	for key, raw := range doc {
		field, ok := model.ParseFieldName(key)
		if !ok {
			return nil, fmt.Errorf("config: %s: unknown field %q", source, key)
		}
		text, err := scalarText(raw)
		if err != nil {
			return nil, fmt.Errorf("config: %s: field %s: %w", source, key, err)
		}
		out[field] = text
	}
	return out, nil
}

func scalarText(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("expected a scalar, got %T", raw)
	}
}
