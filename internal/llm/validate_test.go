package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testInsightSchema() *Schema {
	return &Schema{
		Name:        "test-insight",
		Description: "A chart insight",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"content": map[string]any{"type": "string", "minLength": 1},
				"trend":   map[string]any{"type": "string", "enum": []string{"positive", "negative", "neutral"}},
				"year":    map[string]any{"type": "integer", "minimum": 2000},
			},
			"required": []string{"content", "trend"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"content":"Solar overtakes coal.","trend":"positive","year":2024}`, false},
		{"optional field omitted", `{"content":"Gas is flat.","trend":"neutral"}`, false},
		{"missing required", `{"content":"No trend here."}`, true},
		{"wrong type", `{"content":"x","trend":"neutral","year":"2024"}`, true},
		{"enum violation", `{"content":"x","trend":"sideways"}`, true},
		{"below minimum", `{"content":"x","trend":"neutral","year":1999}`, true},
		{"empty content", `{"content":"","trend":"neutral"}`, true},
		{"malformed", `{not json}`, true},
		{"empty body", ``, true},
		{"whitespace body", "  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testInsightSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain prose is fine`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"region": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"shares": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "number"},
				},
			},
			"required": []any{"region", "shares"},
		},
	}

	valid := json.RawMessage(`{"region":{"name":"Europe"},"shares":[12.5,18.1,31.4]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"region":{"name":"Europe"},"shares":["low","high"]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}
