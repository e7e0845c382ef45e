package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColour is returned when a colour description cannot be parsed.
var ErrInvalidColour = errors.New("invalid colour")

// Parse parses a colour description. Supported forms:
//
//	#rgb, #rgba, #rrggbb, #rrggbbaa (the leading # is optional)
//	rgb(r, g, b), rgba(r, g, b, a), rgb(r g b / a)
//	hsl(h, s, l), hsla(h, s, l, a), hsl(h s l / a)
//	CSS named colours and "transparent"
//
// Matching is case-insensitive and surrounding whitespace is ignored.
func Parse(input string) (Colour, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return Colour{}, fmt.Errorf("%w: empty input", ErrInvalidColour)
	}

	if s == "transparent" {
		return Colour{A: 0}, nil
	}

	if named, ok := colornames.Map[s]; ok {
		return Colour{R: named.R, G: named.G, B: named.B, A: 1}, nil
	}

	if name, args, ok := splitFunction(s); ok {
		var (
			c   Colour
			err error
		)
		switch name {
		case "rgb", "rgba":
			c, err = parseRGBFunction(args)
		case "hsl", "hsla":
			c, err = parseHSLFunction(args)
		default:
			err = fmt.Errorf("unsupported function %q", name)
		}
		if err != nil {
			return Colour{}, fmt.Errorf("%w: %q: %w", ErrInvalidColour, input, err)
		}
		return c, nil
	}

	if c, ok := parseHex(s); ok {
		return c, nil
	}

	return Colour{}, fmt.Errorf("%w: %q", ErrInvalidColour, input)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(input string) Colour {
	c, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return c
}

// IsValid reports whether the input can be parsed as a colour.
func IsValid(input string) bool {
	_, err := Parse(input)
	return err == nil
}

// parseHex parses #rgb, #rgba, #rrggbb and #rrggbbaa, with or without the hash.
func parseHex(s string) (Colour, bool) {
	s = strings.TrimPrefix(s, "#")
	for _, r := range s {
		if !isHexDigit(r) {
			return Colour{}, false
		}
	}

	// Expand short forms.
	if len(s) == 3 || len(s) == 4 {
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		s = b.String()
	}

	var rgb, alpha string
	switch len(s) {
	case 6:
		rgb = s
	case 8:
		rgb, alpha = s[:6], s[6:]
	default:
		return Colour{}, false
	}

	cf, err := colorful.Hex("#" + rgb)
	if err != nil {
		return Colour{}, false
	}

	a := 1.0
	if alpha != "" {
		v, err := strconv.ParseUint(alpha, 16, 8)
		if err != nil {
			return Colour{}, false
		}
		a = float64(v) / 255.0
	}

	return fromColorful(cf, a), true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

// splitFunction splits "name(args)" into its name and argument tokens.
// Arguments may be separated by commas, whitespace or a slash before alpha.
func splitFunction(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(s[:open])
	body := s[open+1 : len(s)-1]
	args := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t'
	})
	return name, args, true
}

func parseRGBFunction(args []string) (Colour, error) {
	if len(args) != 3 && len(args) != 4 {
		return Colour{}, fmt.Errorf("expected 3 or 4 components, got %d", len(args))
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, pct, err := parseNumber(args[i])
		if err != nil {
			return Colour{}, err
		}
		if pct {
			v = v / 100 * 255
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}

	a := 1.0
	if len(args) == 4 {
		var err error
		if a, err = parseAlpha(args[3]); err != nil {
			return Colour{}, err
		}
	}

	return Colour{R: ch[0], G: ch[1], B: ch[2], A: a}, nil
}

func parseHSLFunction(args []string) (Colour, error) {
	if len(args) != 3 && len(args) != 4 {
		return Colour{}, fmt.Errorf("expected 3 or 4 components, got %d", len(args))
	}

	h, _, err := parseNumber(strings.TrimSuffix(args[0], "deg"))
	if err != nil {
		return Colour{}, err
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	s, err := parseUnit(args[1])
	if err != nil {
		return Colour{}, err
	}
	l, err := parseUnit(args[2])
	if err != nil {
		return Colour{}, err
	}

	a := 1.0
	if len(args) == 4 {
		if a, err = parseAlpha(args[3]); err != nil {
			return Colour{}, err
		}
	}

	return fromColorful(colorful.Hsl(h, s, l), a), nil
}

// parseUnit parses a saturation or lightness component. Percentages and
// values above 1 are scaled from 0-100, anything else is taken as a fraction.
func parseUnit(tok string) (float64, error) {
	v, pct, err := parseNumber(tok)
	if err != nil {
		return 0, err
	}
	if pct || v > 1 {
		v /= 100
	}
	return clamp01(v), nil
}

func parseAlpha(tok string) (float64, error) {
	v, pct, err := parseNumber(tok)
	if err != nil {
		return 0, err
	}
	if pct {
		v /= 100
	}
	return clamp01(v), nil
}

// parseNumber parses a finite number with an optional trailing percent sign.
func parseNumber(tok string) (float64, bool, error) {
	pct := strings.HasSuffix(tok, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid number %q", tok)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("non-finite number %q", tok)
	}
	return v, pct, nil
}
