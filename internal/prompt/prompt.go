// Package prompt assembles the instruction sent to the model for one analysis.
package prompt

import (
	"fmt"
	"strings"

	"peacemaker/internal/scale"
)

// Build returns the prompt asking the model to rate text on desc.
// The text is embedded verbatim; topic may be empty.
func Build(desc *scale.Descriptor, text, topic string) string {
	var levels strings.Builder
	for _, l := range desc.Levels {
		fmt.Fprintf(&levels, "- Level %d (%s): %s\n", l.Level, l.Category, l.Description)
	}

	topicLine := ""
	if t := strings.TrimSpace(topic); t != "" {
		topicLine = fmt.Sprintf("\nThe author is sharing their perspective on the topic: %q\n", t)
	}

	return fmt.Sprintf(`Analyze the following text and rate it on the %s, which is %s.
%s
The %s:
%s
TEXT TO ANALYZE:
"%s"

Return ONLY a JSON object with:
1. "score": an integer from %d to %d representing the score on the %s
2. "explanation": a brief explanation of why the text received this score, with specific examples from the text
3. "category": %s
4. "improvementTips": an array of 2-3 strings, each a complete sentence suggesting how to rephrase the text more constructively (no numbering or bullet characters)

Response format:
{
  "score": number,
  "explanation": string,
  "category": string,
  "improvementTips": [string]
}`,
		desc.Title, desc.Summary,
		topicLine,
		desc.Title,
		levels.String(),
		text,
		desc.Min, desc.Max, desc.Title,
		categoryClause(desc),
	)
}

func categoryClause(desc *scale.Descriptor) string {
	parts := make([]string, 0, len(desc.Bands))
	for _, b := range desc.Bands {
		parts = append(parts, fmt.Sprintf(`"%s" (scores %d-%d)`, b.Category, b.Min, b.Max))
	}
	switch len(parts) {
	case 0:
		return "a category name"
	case 1:
		return parts[0]
	case 2:
		return "either " + parts[0] + " or " + parts[1]
	}
	return "one of " + strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}
