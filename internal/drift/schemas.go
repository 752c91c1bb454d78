package drift

// wireSchemas are the expected wire shapes, keyed by name. They encode
// what the client can actually tolerate: the quiz schema accepts either
// schedule spelling but requires one of them, so a server build that
// drops both is flagged immediately.
var wireSchemas = map[string]map[string]any{
	"quiz": {
		"type":     "object",
		"required": []any{"_id", "title", "status"},
		"properties": map[string]any{
			"_id":                map[string]any{"type": "string"},
			"code":               map[string]any{"type": "string"},
			"title":              map[string]any{"type": "string"},
			"description":        map[string]any{"type": "string"},
			"status":             map[string]any{"enum": []any{"draft", "published", "completed"}},
			"schedule":           map[string]any{"type": "string"},
			"schadule":           map[string]any{"type": "string"},
			"questions_number":   map[string]any{"type": "integer"},
			"duration":           map[string]any{"type": []any{"integer", "string"}},
			"score_per_question": map[string]any{"type": []any{"integer", "string"}},
			"difficulty":         map[string]any{"type": "string"},
			"type":               map[string]any{"type": "string"},
		},
		"anyOf": []any{
			map[string]any{"required": []any{"schedule"}},
			map[string]any{"required": []any{"schadule"}},
		},
	},
	"group": {
		"type":     "object",
		"required": []any{"_id", "name"},
		"properties": map[string]any{
			"_id":  map[string]any{"type": "string"},
			"name": map[string]any{"type": "string"},
			"students": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object"},
			},
		},
	},
	"student": {
		"type":     "object",
		"required": []any{"_id", "first_name", "last_name"},
		"properties": map[string]any{
			"_id":        map[string]any{"type": "string"},
			"first_name": map[string]any{"type": "string"},
			"last_name":  map[string]any{"type": "string"},
			"email":      map[string]any{"type": "string"},
		},
	},
	"question": {
		"type":     "object",
		"required": []any{"_id", "title", "options"},
		"properties": map[string]any{
			"_id":   map[string]any{"type": "string"},
			"title": map[string]any{"type": "string"},
			"options": map[string]any{
				"type":     "object",
				"required": []any{"A", "B", "C", "D"},
			},
			"answer": map[string]any{"enum": []any{"A", "B", "C", "D"}},
		},
	},
}

// SchemaNames lists the wire schemas the doctor can check.
func SchemaNames() []string {
	return []string{"quiz", "group", "student", "question"}
}
