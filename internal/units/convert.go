package units

import (
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// RateProvider supplies exchange rates relative to USD (USD == 1).
type RateProvider interface {
	Rates() (map[string]float64, error)
}

// Option configures a Converter.
type Option func(*Converter)

// WithRates binds the exchange-rate source used for the currency category.
func WithRates(p RateProvider) Option {
	return func(c *Converter) {
		c.rates = p
	}
}

// Converter converts values between units of the same category.
// It holds no mutable state and is safe for concurrent use.
type Converter struct {
	categories []Category
	index      map[string]int
	rates      RateProvider
}

// New creates a Converter over the built-in category table.
func New(opts ...Option) *Converter {
	c := &Converter{categories: builtin()}
	c.index = make(map[string]int, len(c.categories))
	for i, cat := range c.categories {
		c.index[cat.Key] = i
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Categories returns the category table in display order.
func (c *Converter) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category looks up a category by key.
func (c *Converter) Category(key string) (Category, bool) {
	i, ok := c.index[key]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Convert converts value from one unit to another within a category.
//
// Parameters:
//   - value: the quantity to convert; NaN and infinities are rejected
//   - category: category key such as "length" or "currency"
//   - from, to: unit keys within the category
//
// Returns the converted value. Converting a unit to itself returns value
// unchanged. Unknown categories or units return an errs.ErrInvalidInput
// error; currency conversion without usable rates returns
// errs.ErrRatesUnavailable.
func (c *Converter) Convert(value float64, category, from, to string) (float64, error) {
	const op = "units.Convert"

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errs.Invalid(op, "value must be a finite number")
	}

	cat, ok := c.Category(category)
	if !ok {
		return 0, errs.Invalid(op, "unknown category %q", category)
	}
	fromUnit, ok := cat.Unit(from)
	if !ok {
		return 0, errs.Invalid(op, "unknown unit %q", from)
	}
	toUnit, ok := cat.Unit(to)
	if !ok {
		return 0, errs.Invalid(op, "unknown unit %q", to)
	}

	if from == to {
		return value, nil
	}

	switch cat.Kind {
	case Temperature:
		return fromCelsius(toCelsius(value, from), to), nil
	case Currency:
		return c.convertCurrency(value, from, to)
	default:
		return value * fromUnit.Factor / toUnit.Factor, nil
	}
}

func toCelsius(v float64, unit string) float64 {
	switch unit {
	case "fahrenheit":
		return (v - 32) * 5 / 9
	case "kelvin":
		return v - 273.15
	}
	return v
}

func fromCelsius(c float64, unit string) float64 {
	switch unit {
	case "fahrenheit":
		return c*9/5 + 32
	case "kelvin":
		return c + 273.15
	}
	return c
}

func (c *Converter) convertCurrency(value float64, from, to string) (float64, error) {
	const op = "units.Convert"

	if c.rates == nil {
		return 0, errs.RatesUnavailable(op, "no exchange-rate source configured")
	}
	table, err := c.rates.Rates()
	if err != nil {
		return 0, &errs.Error{Kind: errs.KindRatesUnavailable, Op: op, Msg: "exchange rates not loaded", Err: err}
	}

	rFrom, rTo := table[from], table[to]
	if rFrom <= 0 || rTo <= 0 {
		return 0, errs.RatesUnavailable(op, "no rate for "+from+" or "+to)
	}
	return value / rFrom * rTo, nil
}

// Format renders a converted value the way results are displayed: rounded
// to 6 decimals with trailing zeros removed.
func Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

// Formula returns a human-readable formula hint for the common temperature
// conversions, or "" when there is none.
func Formula(category, from, to string) string {
	if category != "temperature" {
		return ""
	}
	switch {
	case from == "celsius" && to == "fahrenheit":
		return "°F = (°C × 9/5) + 32"
	case from == "fahrenheit" && to == "celsius":
		return "°C = (°F - 32) × 5/9"
	}
	return ""
}
