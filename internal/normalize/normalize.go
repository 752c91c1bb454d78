// Package normalize repairs known schema drift between server wire shapes
// and the client model. It is the single place drift is handled; nothing
// downstream ever sees the raw wire keys.
package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/quizdesk/quizdesk/internal/model"
)

// Quiz repairs a raw quiz object. The server historically stores the
// schedule under the misspelled key "schadule"; when the correct key is
// absent the value is copied over. An explicit "schedule" always wins.
// Unknown fields pass through untouched and the input is never mutated.
func Quiz(raw map[string]any) map[string]any {
	if raw == nil {
		return nil
	}

	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	if v, ok := raw["schadule"]; ok {
		if _, present := raw["schedule"]; !present {
			out["schedule"] = v
		}
	}

	return out
}

// QuizArray repairs a raw quiz list, skipping elements that are not
// objects.
func QuizArray(raw []any) []map[string]any {
	out := make([]map[string]any, 0, len(raw))
	for _, elem := range raw {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Quiz(obj))
	}
	return out
}

// DecodeQuiz normalizes a raw quiz object and decodes it into the typed
// model.
func DecodeQuiz(raw map[string]any) (model.Quiz, error) {
	var q model.Quiz
	b, err := json.Marshal(Quiz(raw))
	if err != nil {
		return q, fmt.Errorf("encode quiz: %w", err)
	}
	if err := json.Unmarshal(b, &q); err != nil {
		return q, fmt.Errorf("decode quiz: %w", err)
	}
	return q, nil
}

// DecodeQuizArray normalizes and decodes a raw quiz list.
func DecodeQuizArray(raw []any) ([]model.Quiz, error) {
	objs := QuizArray(raw)
	out := make([]model.Quiz, 0, len(objs))
	for _, obj := range objs {
		q, err := DecodeQuiz(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
