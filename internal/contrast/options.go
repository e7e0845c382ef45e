// Package contrast picks a readable text colour for a background colour,
// either by WCAG luminance threshold or by rotating the background's hue.
package contrast

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Default option values.
const (
	DefaultThreshold   = 0.5
	DefaultLightColour = "#FFFFFF"
	DefaultDarkColour  = "#000000"
)

var (
	// ErrUnknownStrategy is returned when a strategy name is not recognised.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrUnknownDirection is returned when a direction name is not recognised.
	ErrUnknownDirection = errors.New("unknown direction")
)

// Strategy selects how the text colour is derived from the background.
type Strategy int

const (
	// StrategyAccessibility returns the dark or light colour based on luminance.
	StrategyAccessibility Strategy = iota
	// StrategyAnalogous rotates the hue by 15 degrees.
	StrategyAnalogous
	// StrategyAdjacent rotates the hue by 60 degrees.
	StrategyAdjacent
	// StrategyContrast rotates the hue by 120 degrees.
	StrategyContrast
	// StrategyComplementary rotates the hue by 180 degrees.
	StrategyComplementary
	// StrategyCustom rotates the hue by Options.CustomDegree.
	StrategyCustom
)

// strategyDegrees holds the fixed rotation of each hue strategy.
var strategyDegrees = map[Strategy]float64{
	StrategyAnalogous:     15,
	StrategyAdjacent:      60,
	StrategyContrast:      120,
	StrategyComplementary: 180,
}

var strategyNames = map[Strategy]string{
	StrategyAccessibility: "accessibility",
	StrategyAnalogous:     "analogous",
	StrategyAdjacent:      "adjacent",
	StrategyContrast:      "contrast",
	StrategyComplementary: "complementary",
	StrategyCustom:        "custom",
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyAccessibility,
		StrategyAnalogous,
		StrategyAdjacent,
		StrategyContrast,
		StrategyComplementary,
		StrategyCustom,
	}
}

// String returns the strategy name.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStrategy parses a strategy name (case-insensitive).
// An empty name selects the accessibility strategy.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return StrategyAccessibility, nil
	}
	for s, sn := range strategyNames {
		if sn == n {
			return s, nil
		}
	}
	return StrategyAccessibility, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Direction is the way round the colour wheel a hue rotation goes.
type Direction int

const (
	// DirectionClockwise adds the rotation to the hue.
	DirectionClockwise Direction = iota
	// DirectionCounterClockwise subtracts the rotation from the hue.
	DirectionCounterClockwise
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionClockwise:
		return "clockwise"
	case DirectionCounterClockwise:
		return "counterClockwise"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDirection parses a direction name (case-insensitive).
// Accepts clockwise/cw and counterclockwise/counter-clockwise/anticlockwise/ccw.
// An empty name selects clockwise.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "clockwise", "cw":
		return DirectionClockwise, nil
	case "counterclockwise", "counter-clockwise", "anticlockwise", "anti-clockwise", "ccw":
		return DirectionCounterClockwise, nil
	default:
		return DirectionClockwise, fmt.Errorf("%w: %q", ErrUnknownDirection, name)
	}
}

// sign returns +1 for clockwise and -1 for counter-clockwise.
func (d Direction) sign() float64 {
	if d == DirectionCounterClockwise {
		return -1
	}
	return 1
}

// Options configures a Resolver. Threshold and CustomDegree are not range
// checked; out-of-range values are used as given.
type Options struct {
	Strategy     Strategy  `json:"strategy"`
	Threshold    float64   `json:"threshold"`
	LightColour  string    `json:"light_colour"`
	DarkColour   string    `json:"dark_colour"`
	Direction    Direction `json:"direction"`
	CustomDegree float64   `json:"custom_degree"`
}

// DefaultOptions returns the options used when nothing is overridden.
func DefaultOptions() Options {
	return Options{
		Strategy:     StrategyAccessibility,
		Threshold:    DefaultThreshold,
		LightColour:  DefaultLightColour,
		DarkColour:   DefaultDarkColour,
		Direction:    DirectionClockwise,
		CustomDegree: 0,
	}
}

// rotation returns the signed hue rotation for the configured strategy and
// whether the strategy rotates at all.
func (o Options) rotation() (float64, bool) {
	var degrees float64
	switch o.Strategy {
	case StrategyAnalogous, StrategyAdjacent, StrategyContrast, StrategyComplementary:
		degrees = strategyDegrees[o.Strategy]
	case StrategyCustom:
		degrees = o.CustomDegree
		if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
			degrees = 0
		}
	default:
		return 0, false
	}
	return degrees * o.Direction.sign(), true
}
