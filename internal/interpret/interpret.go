// Package interpret turns a model's free-text answer into a ScoreResult.
//
// Interpretation runs in two explicit stages. ParseStrict locates the
// embedded JSON object and validates it; Fallback recovers a complete result
// from plain text. Interpreter chains them according to its Mode.
package interpret

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"peacemaker/internal/model"
	"peacemaker/internal/scale"
)

var (
	ErrNoJSON        = errors.New("no JSON object in response")
	ErrMalformedJSON = errors.New("malformed JSON in response")
	ErrInvalidFormat = errors.New("invalid response format")
)

const (
	explanationLimit = 300
	fallbackTip      = "Try rephrasing your message with calmer, more respectful language that focuses on ideas rather than people."
	emptyExplanation = "The analysis service returned an empty response."
)

var scorePattern = regexp.MustCompile(`(?i)score[^0-9\n]{0,12}(\d+)`)

// ParseStrict extracts and validates the JSON object in raw
func ParseStrict(raw string, desc *scale.Descriptor) (model.ScoreResult, error) {
	var result model.ScoreResult

	payload, ok := Extract(raw)
	if !ok {
		return result, ErrNoJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return result, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	score, err := parseScore(fields["score"], desc)
	if err != nil {
		return result, err
	}
	explanation, err := requireString(fields, "explanation")
	if err != nil {
		return result, err
	}
	category, err := requireString(fields, "category")
	if err != nil {
		return result, err
	}

	result.Score = score
	result.Explanation = explanation
	result.Category = category
	result.ImprovementTips = coerceTips(fields["improvementTips"])
	return result, nil
}

// Fallback builds a complete result from a response that could not be parsed.
// Every field is populated.
func Fallback(raw string, desc *scale.Descriptor) model.ScoreResult {
	score := desc.Midpoint()
	if m := scorePattern.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && desc.InRange(n) {
			score = n
		}
	}

	return model.ScoreResult{
		Score:           score,
		Explanation:     truncate(raw, explanationLimit),
		Category:        desc.DefaultCategory(),
		ImprovementTips: []string{fallbackTip},
	}
}

func parseScore(raw json.RawMessage, desc *scale.Descriptor) (int, error) {
	if isNull(raw) {
		return 0, fmt.Errorf("%w: missing score", ErrInvalidFormat)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("%w: score is not a number", ErrInvalidFormat)
	}
	score := int(math.Round(f))
	if !desc.InRange(score) {
		return 0, fmt.Errorf("%w: score %d outside %d-%d", ErrInvalidFormat, score, desc.Min, desc.Max)
	}
	return score, nil
}

func requireString(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return "", fmt.Errorf("%w: missing %s", ErrInvalidFormat, name)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s is not a string", ErrInvalidFormat, name)
	}
	return strings.TrimSpace(s), nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || strings.TrimSpace(string(raw)) == "null"
}

// Absent or non-list tips become an empty list; non-string entries are dropped.
func coerceTips(raw json.RawMessage) []string {
	tips := []string{}
	if len(raw) == 0 {
		return tips
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return tips
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			tips = append(tips, s)
		}
	}
	return tips
}

func truncate(raw string, limit int) string {
	clean := strings.Join(strings.Fields(raw), " ")
	if clean == "" {
		return emptyExplanation
	}
	runes := []rune(clean)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return clean
}
