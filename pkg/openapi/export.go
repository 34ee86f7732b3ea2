package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
)

// Export builds the OpenAPI document for policy.
func Export(ctx context.Context, policy *schema.Policy, options ...Option) (*Document, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	if policy == nil {
		return nil, errors.New("openapi: policy is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := newExportOptions(options)
	desc := policy.Describe()

	payload := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       cfg.title,
			"version":     cfg.version,
			"description": desc.Description,
		},
		"paths": map[string]any{
			cfg.path: map[string]any{
				"post": submitOperation(cfg, desc),
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				FormSchemaName:     formSchema(desc),
				ErrorMapSchemaName: errorMapSchema(desc),
			},
		},
	}

	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}

	return &Document{policy: desc.Name, raw: raw, spec: spec}, nil
}

func submitOperation(cfg exportOptions, desc schema.Description) map[string]any {
	ref := map[string]any{"$ref": "#/components/schemas/" + FormSchemaName}
	errRef := map[string]any{"$ref": "#/components/schemas/" + ErrorMapSchemaName}
	return map[string]any{
		"operationId": cfg.operationID,
		"summary":     "Submit a registration",
		"requestBody": map[string]any{
			"required": true,
			"content": map[string]any{
				"application/x-www-form-urlencoded": map[string]any{"schema": ref},
				"application/json":                  map[string]any{"schema": ref},
			},
		},
		"responses": map[string]any{
			"200": map[string]any{
				"description": "Registration accepted",
				"content": map[string]any{
					"application/json": map[string]any{"schema": ref},
				},
			},
			"422": map[string]any{
				"description": "One or more fields failed validation",
				"content": map[string]any{
					"application/json": map[string]any{"schema": errRef},
				},
			},
		},
		extensionPolicy: desc.Name,
	}
}

func formSchema(desc schema.Description) map[string]any {
	properties := make(map[string]any, len(desc.Fields))
	required := make([]string, 0, len(desc.Fields))
	for _, field := range desc.Fields {
		properties[string(field.Field)] = fieldSchema(field)
		if field.Required {
			required = append(required, string(field.Field))
		}
	}
	out := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
		extensionPolicy:        desc.Name,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	if desc.Hints.LivePreview {
		out[extensionLivePreview] = true
	}
	return out
}

func fieldSchema(field schema.FieldSpec) map[string]any {
	out := map[string]any{"type": "string"}
	if field.Field == model.FieldAge {
		out["type"] = "integer"
	}
	if field.Nullable {
		out["nullable"] = true
	}

	names := make([]string, 0, len(field.Rules))
	for _, rule := range field.Rules {
		names = append(names, rule.Name)
		switch rule.Name {
		case schema.RuleRequired:
			if out["type"] == "string" {
				out["minLength"] = maxInt(out["minLength"], 1)
			}
		case schema.RuleMinLength:
			if n, err := strconv.Atoi(rule.Params["value"]); err == nil {
				out["minLength"] = maxInt(out["minLength"], n)
			}
		case schema.RuleEmail:
			out["format"] = "email"
		case schema.RuleOneOf:
			if values := rule.Params["values"]; values != "" {
				out["enum"] = strings.Split(values, ",")
			}
		case schema.RulePositive:
			// Rounded to an integer before the check, so > 0 is >= 1.
			out["minimum"] = 1
		}
		if rule.Message != "" && rule.Name != schema.RuleRequired {
			out["description"] = appendDescription(out["description"], rule.Message)
		}
	}
	out[extensionRules] = names
	return out
}

func errorMapSchema(desc schema.Description) map[string]any {
	properties := make(map[string]any, len(desc.Fields))
	for _, field := range desc.Fields {
		properties[string(field.Field)] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

func maxInt(current any, n int) int {
	if existing, ok := current.(int); ok && existing > n {
		return existing
	}
	return n
}

func appendDescription(current any, msg string) string {
	if existing, ok := current.(string); ok && existing != "" {
		return existing + "; " + msg
	}
	return msg
}
