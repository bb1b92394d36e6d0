// Package schema holds the normalized input document of one analysis run.
//
// An Input is built once from an external document and is read-only afterwards.
// Section and key names are matched case-insensitively and reported upper-case.
package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/spf13/cast"
)

const (
	SectionProperty  = "PROPERTY"
	SectionPurchase  = "PURCHASE"
	SectionFinancing = "FINANCING"
	SectionIncome    = "INCOME"
	SectionExpenses  = "EXPENSES"
	SectionMisc      = "MISC"
)

// Sections lists the top-level sections of an input document.
var Sections = []string{
	SectionProperty,
	SectionPurchase,
	SectionFinancing,
	SectionIncome,
	SectionExpenses,
	SectionMisc,
}

// Input is an immutable, section-keyed view over an input document plus the
// defaults that apply to keys the document leaves out.
type Input struct {
	source   string
	sections map[string]map[string]any
	defaults Defaults
}

// New normalizes doc into an Input. Unknown top-level sections are kept but
// never read; a section that is not a mapping is a MalformedInputError.
func New(source string, doc map[string]any, defaults Defaults) (*Input, error) {
	in := &Input{
		source:   source,
		sections: make(map[string]map[string]any, len(doc)),
		defaults: defaults.clone(),
	}

	for name, raw := range doc {
		section := strings.ToUpper(name)
		values, err := cast.ToStringMapE(raw)
		if err != nil {
			return nil, &domain.MalformedInputError{
				Path: source,
				Err:  fmt.Errorf("section %s is not a mapping", section),
			}
		}

		normalized := make(map[string]any, len(values))
		for key, value := range values {
			normalized[strings.ToUpper(key)] = value
		}
		in.sections[section] = normalized
	}
	return in, nil
}

// Source returns the name of the document the input was read from.
func (in *Input) Source() string {
	return in.source
}

// HasSection reports whether the document itself carries the section.
func (in *Input) HasSection(section string) bool {
	_, ok := in.sections[strings.ToUpper(section)]
	return ok
}

// Keys returns the sorted keys the document sets explicitly in section.
func (in *Input) Keys(section string) []string {
	values := in.sections[strings.ToUpper(section)]
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the document value for section.key, falling back to the
// defaults. The boolean is false when neither defines the key.
func (in *Input) Lookup(section, key string) (any, bool) {
	section, key = strings.ToUpper(section), strings.ToUpper(key)
	if values, ok := in.sections[section]; ok {
		if v, ok := values[key]; ok && v != nil {
			return v, true
		}
	}
	v, ok := in.defaults[QualifiedKey(section, key)]
	return v, ok
}

// Float returns section.key as a finite number.
func (in *Input) Float(section, key string) (float64, error) {
	raw, err := in.require(section, key)
	if err != nil {
		return 0, err
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, in.typeError(section, key, "a number", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &domain.DomainError{
			Field:  QualifiedKey(section, key),
			Reason: fmt.Sprintf("must be a finite number, got %v", f),
		}
	}
	return f, nil
}

// Int returns section.key as a whole number. Fractional values are rejected
// rather than truncated.
func (in *Input) Int(section, key string) (int, error) {
	f, err := in.Float(section, key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, &domain.DomainError{
			Field:  QualifiedKey(section, key),
			Reason: fmt.Sprintf("must be a whole number, got %v", f),
		}
	}
	return int(f), nil
}

// String returns section.key as text. Numbers are rendered as written.
func (in *Input) String(section, key string) (string, error) {
	raw, err := in.require(section, key)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", in.typeError(section, key, "a string", raw)
	}
	return s, nil
}

func (in *Input) require(section, key string) (any, error) {
	v, ok := in.Lookup(section, key)
	if !ok {
		return nil, &domain.MissingInputError{
			Section: strings.ToUpper(section),
			Key:     strings.ToUpper(key),
		}
	}
	return v, nil
}

func (in *Input) typeError(section, key, want string, got any) error {
	return &domain.MalformedInputError{
		Path: in.source,
		Err:  fmt.Errorf("%s must be %s, got %q", QualifiedKey(section, key), want, fmt.Sprint(got)),
	}
}
