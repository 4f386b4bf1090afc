// Package scale describes the scoring scales the model rates text on and
// classifies numeric scores into the named bands shown by the UI.
package scale

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrUnknownScale    = errors.New("unknown scale")
)

// Direction states what a higher score means on a scale
type Direction string

const (
	// AscendingSeverity: 1 is the best outcome, Max the worst
	AscendingSeverity Direction = "ascending-severity"
	// AscendingDignity: 1 is the worst outcome, Max the best
	AscendingDignity Direction = "ascending-dignity"
)

// Level is one reference row of a scale, used for tooltips and prompts
type Level struct {
	Level       int    `json:"level"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// Band is a contiguous, named range of scores
type Band struct {
	Category   string `json:"category"`
	Label      string `json:"label"`
	Min        int    `json:"min"`
	Max        int    `json:"max"`
	Badge      string `json:"badge"`
	ScoreColor string `json:"scoreColor"`
}

// Contains reports whether score falls inside the band
func (b Band) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// Descriptor is a read-only scale definition
type Descriptor struct {
	Name          string    `json:"name"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Min           int       `json:"min"`
	Max           int       `json:"max"`
	Direction     Direction `json:"direction"`
	DefaultScore  int       `json:"defaultScore"`
	RequiresTopic bool      `json:"requiresTopic"`
	LowLabel      string    `json:"lowLabel"`
	HighLabel     string    `json:"highLabel"`
	Levels        []Level   `json:"levels"`
	Bands         []Band    `json:"bands"`
}

// Classify maps a score to its band
func (d *Descriptor) Classify(score int) (Band, error) {
	for _, b := range d.Bands {
		if b.Contains(score) {
			return b, nil
		}
	}
	return Band{}, fmt.Errorf("%s: %d not in [%d, %d]: %w", d.Name, score, d.Min, d.Max, ErrScoreOutOfRange)
}

// InRange reports whether score is a valid score on this scale
func (d *Descriptor) InRange(score int) bool {
	return score >= d.Min && score <= d.Max
}

// Level returns the reference row for score
func (d *Descriptor) Level(score int) (Level, bool) {
	for _, l := range d.Levels {
		if l.Level == score {
			return l, true
		}
	}
	return Level{}, false
}

// Midpoint is the score used when the model's answer carries none
func (d *Descriptor) Midpoint() int {
	return d.DefaultScore
}

// DefaultCategory is the category of the band holding the default score
func (d *Descriptor) DefaultCategory() string {
	b, err := d.Classify(d.DefaultScore)
	if err != nil {
		return ""
	}
	return b.Category
}

// Categories returns the band category ids in score order
func (d *Descriptor) Categories() []string {
	out := make([]string, 0, len(d.Bands))
	for _, b := range d.Bands {
		out = append(out, b.Category)
	}
	return out
}

// Percent returns score as a share of the scale width, for progress bars
func (d *Descriptor) Percent(score int) int {
	if d.Max <= 0 {
		return 0
	}
	return score * 100 / d.Max
}

// Validate checks that the bands partition [Min, Max] and the levels agree with them
func (d *Descriptor) Validate() error {
	if d.Min > d.Max {
		return fmt.Errorf("%s: min %d greater than max %d", d.Name, d.Min, d.Max)
	}
	if len(d.Bands) == 0 {
		return fmt.Errorf("%s: no bands", d.Name)
	}

	bands := make([]Band, len(d.Bands))
	copy(bands, d.Bands)
	sort.Slice(bands, func(i, j int) bool { return bands[i].Min < bands[j].Min })

	next := d.Min
	for _, b := range bands {
		if b.Min > b.Max {
			return fmt.Errorf("%s: band %q is empty", d.Name, b.Category)
		}
		if b.Min != next {
			if b.Min > next {
				return fmt.Errorf("%s: gap before band %q at %d", d.Name, b.Category, next)
			}
			return fmt.Errorf("%s: band %q overlaps at %d", d.Name, b.Category, b.Min)
		}
		next = b.Max + 1
	}
	if next != d.Max+1 {
		return fmt.Errorf("%s: bands end at %d, scale ends at %d", d.Name, next-1, d.Max)
	}

	categories := make(map[string]bool, len(d.Bands))
	for _, c := range d.Categories() {
		if categories[c] {
			return fmt.Errorf("%s: duplicate band category %q", d.Name, c)
		}
		categories[c] = true
	}

	seen := make(map[int]bool, len(d.Levels))
	for _, l := range d.Levels {
		if seen[l.Level] {
			return fmt.Errorf("%s: duplicate level %d", d.Name, l.Level)
		}
		seen[l.Level] = true
		b, err := d.Classify(l.Level)
		if err != nil {
			return err
		}
		if b.Label != l.Category {
			return fmt.Errorf("%s: level %d labelled %q but band is %q", d.Name, l.Level, l.Category, b.Label)
		}
	}
	for s := d.Min; s <= d.Max; s++ {
		if !seen[s] {
			return fmt.Errorf("%s: missing level %d", d.Name, s)
		}
	}

	if !d.InRange(d.DefaultScore) {
		return fmt.Errorf("%s: default score %d: %w", d.Name, d.DefaultScore, ErrScoreOutOfRange)
	}
	return nil
}

// Registry holds the named scales known to the service
type Registry struct {
	scales      map[string]*Descriptor
	defaultName string
}

// NewRegistry builds a registry; the first descriptor becomes the default
func NewRegistry(descs ...*Descriptor) (*Registry, error) {
	r := &Registry{scales: make(map[string]*Descriptor, len(descs))}
	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.scales[d.Name]; dup {
			return nil, fmt.Errorf("duplicate scale %q", d.Name)
		}
		r.scales[d.Name] = d
		if r.defaultName == "" {
			r.defaultName = d.Name
		}
	}
	if r.defaultName == "" {
		return nil, errors.New("registry needs at least one scale")
	}
	return r, nil
}

// DefaultRegistry holds the built-in toxicity and dignity scales
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Toxicity(), Dignity())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns a scale by name; the empty name selects the default scale
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	if name == "" {
		name = r.defaultName
	}
	d, ok := r.scales[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScale)
	}
	return d, nil
}

// Default returns the default scale
func (r *Registry) Default() *Descriptor {
	return r.scales[r.defaultName]
}

// Names returns the registered scale names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scales))
	for name := range r.scales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered scale, ordered by name
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.scales))
	for _, name := range r.Names() {
		out = append(out, r.scales[name])
	}
	return out
}
