// Package units converts values between units of length, mass and
// temperature.
package units

import (
	"strings"

	"github.com/njchilds90/gocalc/internal/calcerr"
)

// Category names a family of mutually convertible units.
type Category string

const (
	Length      Category = "length"
	Mass        Category = "mass"
	Temperature Category = "temperature"
)

// Unit describes one unit. Factor is relative to the category anchor and is
// unused for temperature.
type Unit struct {
	Name    string
	Symbol  string
	Aliases []string
	Factor  float64
}

type table struct {
	category Category
	units    []Unit
}

// ============================================================
// Tables
// ============================================================

var lengthUnits = []Unit{
	{Name: "meter", Symbol: "m", Aliases: []string{"meters", "metre", "metres"}, Factor: 1},
	{Name: "kilometer", Symbol: "km", Aliases: []string{"kilometers", "kilometre", "kilometres"}, Factor: 1000},
	{Name: "mile", Symbol: "mi", Aliases: []string{"miles"}, Factor: 1609.34},
	{Name: "centimeter", Symbol: "cm", Aliases: []string{"centimeters", "centimetre", "centimetres"}, Factor: 0.01},
	{Name: "millimeter", Symbol: "mm", Aliases: []string{"millimeters", "millimetre", "millimetres"}, Factor: 0.001},
	{Name: "inch", Symbol: "in", Aliases: []string{"inches"}, Factor: 0.0254},
	{Name: "foot", Symbol: "ft", Aliases: []string{"feet"}, Factor: 0.3048},
	{Name: "yard", Symbol: "yd", Aliases: []string{"yards"}, Factor: 0.9144},
}

var massUnits = []Unit{
	{Name: "kilogram", Symbol: "kg", Aliases: []string{"kilograms", "kilo", "kilos"}, Factor: 1},
	{Name: "gram", Symbol: "g", Aliases: []string{"grams"}, Factor: 0.001},
	{Name: "pound", Symbol: "lb", Aliases: []string{"pounds", "lbs"}, Factor: 0.453592},
	{Name: "milligram", Symbol: "mg", Aliases: []string{"milligrams"}, Factor: 1e-6},
	{Name: "ounce", Symbol: "oz", Aliases: []string{"ounces"}, Factor: 0.0283495},
	{Name: "tonne", Symbol: "t", Aliases: []string{"tonnes", "metric ton"}, Factor: 1000},
}

var temperatureUnits = []Unit{
	{Name: "celsius", Symbol: "°C", Aliases: []string{"c", "degc"}},
	{Name: "fahrenheit", Symbol: "°F", Aliases: []string{"f", "degf"}},
	{Name: "kelvin", Symbol: "K", Aliases: []string{"k"}},
}

var tables = []table{
	{category: Length, units: lengthUnits},
	{category: Mass, units: massUnits},
	{category: Temperature, units: temperatureUnits},
}

// Categories returns the supported categories in menu order.
func Categories() []Category {
	out := make([]Category, len(tables))
	for i, t := range tables {
		out[i] = t.category
	}
	return out
}

// Units returns a copy of the unit table for a category.
func Units(c Category) ([]Unit, error) {
	t, err := lookupTable(c)
	if err != nil {
		return nil, err
	}
	out := make([]Unit, len(t.units))
	copy(out, t.units)
	return out, nil
}

func lookupTable(c Category) (table, error) {
	name := Category(strings.ToLower(strings.TrimSpace(string(c))))
	for _, t := range tables {
		if t.category == name {
			return t, nil
		}
	}
	return table{}, calcerr.New(calcerr.ErrUnknownUnit, "unknown category %q", string(c))
}

// Lookup resolves a unit name, symbol or alias within a category.
func Lookup(c Category, name string) (Unit, error) {
	t, err := lookupTable(c)
	if err != nil {
		return Unit{}, err
	}
	key := normalize(name)
	for _, u := range t.units {
		if key == u.Name || key == normalize(u.Symbol) {
			return u, nil
		}
		for _, a := range u.Aliases {
			if key == a {
				return u, nil
			}
		}
	}
	return Unit{}, calcerr.New(calcerr.ErrUnknownUnit, "%q is not a %s unit", name, t.category)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "°")
	s = strings.TrimPrefix(s, "degrees ")
	return s
}

// ============================================================
// Conversion
// ============================================================

// Convert converts value between two units of the same category.
func Convert(value float64, c Category, from, to string) (float64, error) {
	src, err := Lookup(c, from)
	if err != nil {
		return 0, err
	}
	dst, err := Lookup(c, to)
	if err != nil {
		return 0, err
	}
	t, _ := lookupTable(c)
	if t.category == Temperature {
		return convertTemperature(value, src.Name, dst.Name), nil
	}
	return value * src.Factor / dst.Factor, nil
}

func convertTemperature(v float64, from, to string) float64 {
	switch {
	case from == to:
		return v
	case from == "celsius" && to == "fahrenheit":
		return v*9/5 + 32
	case from == "fahrenheit" && to == "celsius":
		return (v - 32) * 5 / 9
	case from == "celsius" && to == "kelvin":
		return v + 273.15
	case from == "kelvin" && to == "celsius":
		return v - 273.15
	case from == "fahrenheit" && to == "kelvin":
		return (v-32)*5/9 + 273.15
	default: // kelvin -> fahrenheit
		return (v-273.15)*9/5 + 32
	}
}
