package interpret

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"peacemaker/internal/model"
	"peacemaker/internal/prompt"
	"peacemaker/internal/scale"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"plain", `{"a":1}`, `{"a":1}`, true},
		{"surrounded", "Here you go: {\"a\":1} thanks", `{"a":1}`, true},
		{"code fence", "```json\n{\"a\":{\"b\":2}}\n```", `{"a":{"b":2}}`, true},
		{"brace in string", `{"tip":"use } carefully","n":1} trailing {}`, `{"tip":"use } carefully","n":1}`, true},
		{"escaped quote", `{"q":"say \"}\" ok"}`, `{"q":"say \"}\" ok"}`, true},
		{"truncated", `{"a":{"b":1} and then nothing`, `{"a":{"b":1}`, true},
		{"none", "Sorry, I cannot help with that.", "", false},
		{"unclosed", "{ never closed", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Extract(tc.raw)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestParseStrictScenario(t *testing.T) {
	raw := `{"score": 7, "explanation": "ok", "category": "mild", "improvementTips": ["be nicer"]}`
	got, err := ParseStrict(raw, scale.Toxicity())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.ScoreResult{Score: 7, Explanation: "ok", Category: "mild", ImprovementTips: []string{"be nicer"}}
	if !got.Equal(want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestParseStrictRoundTrip(t *testing.T) {
	for _, desc := range []*scale.Descriptor{scale.Toxicity(), scale.Dignity()} {
		p := prompt.Build(desc, `She said "enough" {twice}`, "Free Speech")
		if p == "" {
			t.Fatal("expected a prompt")
		}
		for s := desc.Min; s <= desc.Max; s++ {
			band, _ := desc.Classify(s)
			want := model.ScoreResult{
				Score:           s,
				Explanation:     "Uses \"quoted\" words and {braces}.",
				Category:        band.Category,
				ImprovementTips: []string{"Lead with a question.", "Name the shared goal."},
			}
			payload, err := json.Marshal(want)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			raw := "Here is my analysis:\n```json\n" + string(payload) + "\n```"
			got, err := ParseStrict(raw, desc)
			if err != nil {
				t.Fatalf("%s score %d: unexpected error: %v", desc.Name, s, err)
			}
			if !got.Equal(want) {
				t.Fatalf("%s score %d: expected %+v, got %+v", desc.Name, s, want, got)
			}
		}
	}
}

func TestParseStrictErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"no json", "Sorry, I cannot help with that.", ErrNoJSON},
		{"malformed", `{"score": 7, "explanation": }`, ErrMalformedJSON},
		{"missing score", `{"explanation": "x", "category": "mild"}`, ErrInvalidFormat},
		{"string score", `{"score": "7", "explanation": "x", "category": "mild"}`, ErrInvalidFormat},
		{"out of range", `{"score": 11, "explanation": "x", "category": "severe"}`, ErrInvalidFormat},
		{"null explanation", `{"score": 3, "explanation": null, "category": "mild"}`, ErrInvalidFormat},
		{"numeric category", `{"score": 3, "explanation": "x", "category": 2}`, ErrInvalidFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseStrict(tc.raw, scale.Toxicity())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseStrictCoercesTips(t *testing.T) {
	cases := map[string]string{
		"absent":     `{"score": 2, "explanation": "x", "category": "non-toxic"}`,
		"not a list": `{"score": 2, "explanation": "x", "category": "non-toxic", "improvementTips": "be kind"}`,
		"null":       `{"score": 2, "explanation": "x", "category": "non-toxic", "improvementTips": null}`,
	}
	for name, raw := range cases {
		got, err := ParseStrict(raw, scale.Toxicity())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got.ImprovementTips == nil || len(got.ImprovementTips) != 0 {
			t.Fatalf("%s: expected empty non-nil tips, got %#v", name, got.ImprovementTips)
		}
	}

	got, err := ParseStrict(`{"score": 2, "explanation": "x", "category": "non-toxic", "improvementTips": ["a", 3, " ", "b"]}`, scale.Toxicity())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.ImprovementTips) != 2 || got.ImprovementTips[0] != "a" || got.ImprovementTips[1] != "b" {
		t.Fatalf("expected tips [a b], got %v", got.ImprovementTips)
	}
}

func TestFallbackPopulatesEveryField(t *testing.T) {
	inputs := []string{
		"Sorry, I cannot help with that.",
		"",
		strings.Repeat("very long answer ", 100),
		"The score would be 12 out of 10",
	}
	for _, desc := range []*scale.Descriptor{scale.Toxicity(), scale.Dignity()} {
		for _, raw := range inputs {
			got := Fallback(raw, desc)
			if got.Score != desc.Midpoint() {
				t.Fatalf("%s %q: expected midpoint %d, got %d", desc.Name, raw, desc.Midpoint(), got.Score)
			}
			if got.Explanation == "" {
				t.Fatalf("%s %q: expected an explanation", desc.Name, raw)
			}
			if got.Category != desc.DefaultCategory() {
				t.Fatalf("%s %q: expected default category %q, got %q", desc.Name, raw, desc.DefaultCategory(), got.Category)
			}
			if len(got.ImprovementTips) != 1 || got.ImprovementTips[0] != fallbackTip {
				t.Fatalf("%s %q: expected the generic tip, got %v", desc.Name, raw, got.ImprovementTips)
			}
		}
	}
}

func TestFallbackExtractsScoreAndTruncates(t *testing.T) {
	got := Fallback("I'd give this a Score: 8 because it insults people.", scale.Toxicity())
	if got.Score != 8 {
		t.Fatalf("expected score 8, got %d", got.Score)
	}
	if got.Category != "moderate" {
		t.Fatalf("expected fixed default category moderate, got %q", got.Category)
	}

	long := Fallback(strings.Repeat("x", 400), scale.Toxicity())
	if !strings.HasSuffix(long.Explanation, "...") || len([]rune(long.Explanation)) != explanationLimit+3 {
		t.Fatalf("expected truncated explanation, got %d runes", len([]rune(long.Explanation)))
	}
}

func TestInterpreterModes(t *testing.T) {
	desc := scale.Toxicity()
	raw := "Sorry, I cannot help with that."

	lenient, err := Interpreter{Mode: Lenient}.Interpret(raw, desc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lenient.Degraded || lenient.Reason != "no_json" {
		t.Fatalf("expected degraded no_json result, got %+v", lenient)
	}
	if lenient.Result.Category != "moderate" || lenient.Result.Score != 5 {
		t.Fatalf("unexpected fallback result %+v", lenient.Result)
	}

	if _, err := (Interpreter{Mode: Strict}).Interpret(raw, desc); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected strict mode to surface ErrNoJSON, got %v", err)
	}

	ok, err := Interpreter{Mode: Strict}.Interpret(`{"score":1,"explanation":"kind","category":"non-toxic"}`, desc)
	if err != nil || ok.Degraded {
		t.Fatalf("expected clean strict result, got %+v, %v", ok, err)
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("strict") != Strict || ParseMode("lenient") != Lenient || ParseMode("") != Lenient {
		t.Fatal("unexpected parse mode mapping")
	}
}
