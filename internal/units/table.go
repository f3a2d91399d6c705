package units

// Kind selects the conversion rule for a category.
type Kind string

const (
	// Linear categories scale by a per-unit factor relative to a base unit.
	Linear Kind = "linear"
	// Temperature converts through Celsius.
	Temperature Kind = "temperature"
	// Currency uses live exchange rates relative to USD.
	Currency Kind = "currency"
)

// Unit is one selectable unit. Factor is only meaningful for Linear
// categories and is relative to the category's base unit (Factor == 1).
type Unit struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Factor float64 `json:"factor,omitempty"`
}

// Category groups units that convert between each other.
type Category struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Units []Unit `json:"units"`
}

// Unit looks up a unit by key.
func (c Category) Unit(key string) (Unit, bool) {
	for _, u := range c.Units {
		if u.Key == key {
			return u, true
		}
	}
	return Unit{}, false
}

// builtin is the static category table, in display order.
func builtin() []Category {
	return []Category{
		{Key: "length", Name: "Length", Kind: Linear, Units: []Unit{
			{"meter", "Meters", 1},
			{"kilometer", "Kilometers", 1000},
			{"centimeter", "Centimeters", 0.01},
			{"millimeter", "Millimeters", 0.001},
			{"mile", "Miles", 1609.344},
			{"yard", "Yards", 0.9144},
			{"foot", "Feet", 0.3048},
			{"inch", "Inches", 0.0254},
		}},
		{Key: "weight", Name: "Weight", Kind: Linear, Units: []Unit{
			{"kilogram", "Kilograms", 1},
			{"gram", "Grams", 0.001},
			{"milligram", "Milligrams", 0.000001},
			{"pound", "Pounds", 0.453592},
			{"ounce", "Ounces", 0.0283495},
			{"ton", "Tons", 1000},
		}},
		{Key: "temperature", Name: "Temperature", Kind: Temperature, Units: []Unit{
			{Key: "celsius", Name: "Celsius"},
			{Key: "fahrenheit", Name: "Fahrenheit"},
			{Key: "kelvin", Name: "Kelvin"},
		}},
		{Key: "area", Name: "Area", Kind: Linear, Units: []Unit{
			{"squareMeter", "Square Meters", 1},
			{"squareKilometer", "Square Kilometers", 1000000},
			{"squareMile", "Square Miles", 2589988.11},
			{"squareYard", "Square Yards", 0.836127},
			{"squareFoot", "Square Feet", 0.092903},
			{"squareInch", "Square Inches", 0.00064516},
			{"acre", "Acres", 4046.86},
			{"hectare", "Hectares", 10000},
		}},
		{Key: "volume", Name: "Volume", Kind: Linear, Units: []Unit{
			{"liter", "Liters", 1},
			{"milliliter", "Milliliters", 0.001},
			{"cubicMeter", "Cubic Meters", 1000},
			{"gallon", "Gallons (US)", 3.78541},
			{"quart", "Quarts (US)", 0.946353},
			{"pint", "Pints (US)", 0.473176},
			{"cup", "Cups (US)", 0.24},
			{"fluidOunce", "Fluid Ounces (US)", 0.0295735},
		}},
		{Key: "speed", Name: "Speed", Kind: Linear, Units: []Unit{
			{"meterPerSecond", "Meters/Second", 1},
			{"kilometerPerHour", "Kilometers/Hour", 0.277778},
			{"milePerHour", "Miles/Hour", 0.44704},
			{"knot", "Knots", 0.514444},
			{"footPerSecond", "Feet/Second", 0.3048},
		}},
		{Key: "time", Name: "Time", Kind: Linear, Units: []Unit{
			{"second", "Seconds", 1},
			{"minute", "Minutes", 60},
			{"hour", "Hours", 3600},
			{"day", "Days", 86400},
			{"week", "Weeks", 604800},
			{"month", "Months", 2592000},
			{"year", "Years", 31536000},
		}},
		{Key: "digital", Name: "Digital Storage", Kind: Linear, Units: []Unit{
			{"bit", "Bits", 1},
			{"byte", "Bytes", 8},
			{"kilobyte", "Kilobytes", 8192},
			{"megabyte", "Megabytes", 8388608},
			{"gigabyte", "Gigabytes", 8589934592},
			{"terabyte", "Terabytes", 8796093022208},
		}},
		{Key: "currency", Name: "Currency", Kind: Currency, Units: []Unit{
			{Key: "USD", Name: "US Dollar"},
			{Key: "EUR", Name: "Euro"},
			{Key: "GBP", Name: "British Pound"},
			{Key: "JPY", Name: "Japanese Yen"},
			{Key: "CAD", Name: "Canadian Dollar"},
			{Key: "AUD", Name: "Australian Dollar"},
			{Key: "INR", Name: "Indian Rupee"},
		}},
	}
}

// QuickConversion is a precomputed reference conversion shown alongside the
// converter.
type QuickConversion struct {
	Category string `json:"category"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// QuickConversions returns the common reference conversions.
func QuickConversions() []QuickConversion {
	return []QuickConversion{
		{"length", "1 kilometer", "0.621371 miles"},
		{"length", "1 meter", "3.28084 feet"},
		{"weight", "1 kilogram", "2.20462 pounds"},
		{"volume", "1 liter", "0.264172 gallons"},
		{"temperature", "1 celsius", "33.8 fahrenheit"},
		{"area", "1 square meter", "10.7639 square feet"},
		{"speed", "1 kilometer/hour", "0.621371 miles/hour"},
		{"digital", "1 megabyte", "1024 kilobytes"},
	}
}
