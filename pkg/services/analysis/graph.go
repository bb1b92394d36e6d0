// Package analysis derives investment metrics from a deal's input document.
//
// Fields are computed once, category by category, in a fixed order. A formula
// may only read fields computed before it; reading a later field fails the run.
//
// Field names follow two markers kept for the debug view: a leading "_" marks a
// computed (non passthrough) field and a trailing "_FMT" marks the display
// string of a ratio. Whether a field is shown in a normal report is decided by
// its Reportable flag, never by its name.
package analysis

import (
	"fmt"
	"math"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/services/format"
	"github.com/de-tools/deal-atlas/pkg/services/schema"
	"github.com/shopspring/decimal"
)

// Field is a derived value computed exactly once per run.
type Field struct {
	Name       string
	Value      Value
	Reportable bool
}

// Category is an ordered group of fields sharing a report heading.
type Category struct {
	Name    string
	Heading string
	Sources []string
	// Fields holds every computed field in evaluation order.
	Fields  []Field
	// Display holds the reportable field names in report order.
	Display []string
}

// Field returns the named field of the category.
func (c *Category) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Reportable returns the reportable fields in display order.
func (c *Category) Reportable() []Field {
	fields := make([]Field, 0, len(c.Display))
	for _, name := range c.Display {
		if f, ok := c.Field(name); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Result is the complete set of derived fields of one run.
type Result struct {
	Source     string
	Categories []Category
}

// Category returns the named category.
func (r *Result) Category(name string) (*Category, bool) {
	for i := range r.Categories {
		if r.Categories[i].Name == name {
			return &r.Categories[i], true
		}
	}
	return nil, false
}

// Value returns category.field.
func (r *Result) Value(category, field string) (Value, bool) {
	c, ok := r.Category(category)
	if !ok {
		return Value{}, false
	}
	f, ok := c.Field(field)
	return f.Value, ok
}

// Evaluate computes every category from in. The first error aborts the run
// and no partial result is returned.
func Evaluate(in *schema.Input) (*Result, error) {
	e := &evaluator{
		in:     in,
		values: make(map[string]Value),
	}

	result := &Result{Source: in.Source()}
	for _, def := range categoryDefs {
		category, err := e.run(def)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s: %w", def.heading, err)
		}
		result.Categories = append(result.Categories, category)
	}
	return result, nil
}

type categoryDef struct {
	name    string
	heading string
	sources []string
	display []string
	eval    func(e *evaluator)
}

// evaluator carries the state of one run. Input and formula errors are sticky:
// the first one is kept and later reads return zero values, and the run stops
// at the end of the current category.
type evaluator struct {
	in      *schema.Input
	values  map[string]Value
	current *Category
	shown   map[string]bool
	err     error
}

func (e *evaluator) run(def categoryDef) (Category, error) {
	e.current = &Category{
		Name:    def.name,
		Heading: def.heading,
		Sources: def.sources,
		Display: def.display,
	}
	e.shown = make(map[string]bool, len(def.display))
	for _, name := range def.display {
		e.shown[name] = true
	}

	def.eval(e)
	if e.err != nil {
		return Category{}, e.err
	}

	for _, name := range def.display {
		if _, ok := e.current.Field(name); !ok {
			return Category{}, fmt.Errorf("display field %s.%s was never computed", def.name, name)
		}
	}
	return *e.current, nil
}

func (e *evaluator) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// set records a field of the current category and returns its value.
// Numbers must be finite.
func (e *evaluator) set(name string, v Value) Value {
	if e.err != nil {
		return v
	}
	if v.Kind != KindText && (math.IsNaN(v.Number) || math.IsInf(v.Number, 0)) {
		e.fail(&domain.DomainError{Field: format.Label(name), Reason: "result is not a finite number"})
		return v
	}
	key := e.current.Name + "." + name
	if _, exists := e.values[key]; exists {
		e.fail(fmt.Errorf("field %s computed twice", key))
		return v
	}
	e.values[key] = v
	e.current.Fields = append(e.current.Fields, Field{Name: name, Value: v, Reportable: e.shown[name]})
	return v
}

func (e *evaluator) setNumber(name string, f float64) float64 {
	e.set(name, Number(f))
	return f
}

func (e *evaluator) setAmount(name string, f float64) float64 {
	e.set(name, Amount(f))
	return f
}

func (e *evaluator) setInteger(name string, i int64) float64 {
	e.set(name, Integer(i))
	return float64(i)
}

// setRounded records an already rounded decimal as a whole amount. A result
// outside the int64 range is a DomainError naming the field.
func (e *evaluator) setRounded(name string, d decimal.Decimal) float64 {
	if e.err != nil {
		return 0
	}
	i, ok := wholeAmount(d)
	if !ok {
		e.fail(&domain.DomainError{
			Field:  format.Label(name),
			Reason: fmt.Sprintf("%s is not representable as a whole amount", d.String()),
		})
		return 0
	}
	return e.setInteger(name, i)
}

// get reads a field computed earlier in this run.
func (e *evaluator) get(category, name string) Value {
	key := category + "." + name
	v, ok := e.values[key]
	if !ok {
		e.fail(fmt.Errorf("field %s read before it was computed", key))
	}
	return v
}

func (e *evaluator) num(category, name string) float64 {
	return e.get(category, name).Number
}

// inputFloat reads a numeric input value.
func (e *evaluator) inputFloat(section, key string) float64 {
	if e.err != nil {
		return 0
	}
	f, err := e.in.Float(section, key)
	if err != nil {
		e.fail(err)
	}
	return f
}

func (e *evaluator) inputInt(section, key string) int {
	if e.err != nil {
		return 0
	}
	i, err := e.in.Int(section, key)
	if err != nil {
		e.fail(err)
	}
	return i
}

func (e *evaluator) inputText(section, key string) string {
	if e.err != nil {
		return ""
	}
	s, err := e.in.String(section, key)
	if err != nil {
		e.fail(err)
	}
	return s
}

// passAmount copies an input number into a field of the same name.
func (e *evaluator) passAmount(section, key string) float64 {
	return e.setAmount(key, e.inputFloat(section, key))
}

func (e *evaluator) passText(section, key string) string {
	s := e.inputText(section, key)
	e.set(key, Text(s))
	return s
}

// inputRate reads a rate that must fall within [lo, hi].
func (e *evaluator) inputRate(section, key string, lo, hi float64) float64 {
	rate := e.inputFloat(section, key)
	if e.err == nil && (rate < lo || rate > hi) {
		e.fail(&domain.DomainError{
			Field:  schema.QualifiedKey(section, key),
			Reason: fmt.Sprintf("must be within [%v, %v], got %v", lo, hi, rate),
		})
	}
	return rate
}

// ratio divides and reports a zero divisor as a DomainError naming the ratio.
func (e *evaluator) ratio(name string, numerator, denominator float64) float64 {
	if e.err != nil {
		return 0
	}
	if denominator == 0 {
		e.fail(&domain.DomainError{Field: name, Reason: "division by zero"})
		return 0
	}
	return numerator / denominator
}

// positive reports a non-positive divisor such as an area or unit count.
func (e *evaluator) positive(name string, f float64) bool {
	if e.err != nil {
		return false
	}
	if f <= 0 {
		e.fail(&domain.DomainError{Field: name, Reason: fmt.Sprintf("must be > 0, got %v", f)})
		return false
	}
	return true
}
