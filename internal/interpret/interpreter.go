package interpret

import (
	"errors"
	"log"

	"peacemaker/internal/model"
	"peacemaker/internal/scale"
)

// Mode selects how parse failures are handled
type Mode int

const (
	// Lenient absorbs every parse failure into the plain-text fallback
	Lenient Mode = iota
	// Strict surfaces parse failures to the caller
	Strict
)

// ParseMode maps a configuration value to a Mode; anything but "strict" is lenient
func ParseMode(s string) Mode {
	if s == "strict" {
		return Strict
	}
	return Lenient
}

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// Interpretation is the outcome of interpreting one response
type Interpretation struct {
	Result   model.ScoreResult
	Degraded bool
	Reason   string
}

// Interpreter chains ParseStrict and Fallback
type Interpreter struct {
	Mode Mode
}

// Interpret parses raw for desc. In Strict mode any parse error is returned;
// in Lenient mode the error is logged and a degraded result is produced.
func (i Interpreter) Interpret(raw string, desc *scale.Descriptor) (Interpretation, error) {
	result, err := ParseStrict(raw, desc)
	if err == nil {
		return Interpretation{Result: result}, nil
	}
	if i.Mode == Strict {
		return Interpretation{}, err
	}

	log.Printf("[Interpret] Falling back to plain-text heuristics: %v", err)
	return Interpretation{
		Result:   Fallback(raw, desc),
		Degraded: true,
		Reason:   reason(err),
	}, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrNoJSON):
		return "no_json"
	case errors.Is(err, ErrMalformedJSON):
		return "malformed_json"
	case errors.Is(err, ErrInvalidFormat):
		return "invalid_format"
	}
	return "unknown"
}
