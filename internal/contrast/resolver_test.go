package contrast

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/oncolour/internal/colour"
)

// newTestResolver returns a resolver whose diagnostics are captured in the returned buffer.
func newTestResolver(opts ...Option) (*Resolver, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Output: &buf,
		Level:  hclog.Trace,
	})
	return New(append([]Option{WithLogger(logger)}, opts...)...), &buf
}

func TestAccessibilityFollowsLuminanceThreshold(t *testing.T) {
	for _, threshold := range []float64{0, 0.18, 0.5, 0.9, 1} {
		r, _ := newTestResolver(WithThreshold(threshold))
		for red := 0; red <= 255; red += 51 {
			for green := 0; green <= 255; green += 51 {
				for blue := 0; blue <= 255; blue += 51 {
					c := colour.Colour{R: uint8(red), G: uint8(green), B: uint8(blue), A: 1}
					want := DefaultLightColour
					if colour.Luminance(c) > threshold {
						want = DefaultDarkColour
					}
					if got := r.ResolveColour(c).Colour; got != want {
						t.Errorf("threshold %v, %s: got %s, want %s", threshold, c.Hex(), got, want)
					}
				}
			}
		}
	}
}

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		name       string
		background string
		want       string
	}{
		{name: "white background", background: "#FFFFFF", want: "#000000"},
		{name: "black background", background: "#000000", want: "#FFFFFF"},
		{name: "yellow background", background: "yellow", want: "#000000"},
		{name: "navy background", background: "navy", want: "#FFFFFF"},
		{name: "mid grey background", background: "#808080", want: "#FFFFFF"},
		{name: "hsl light background", background: "hsl(60, 100%, 90%)", want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestResolver()
			if got := r.Resolve(tt.background); got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.background, got, tt.want)
			}
		})
	}
}

func TestResolveInvalidInput(t *testing.T) {
	r, logs := newTestResolver()
	res := r.ResolveDetail("not-a-color")

	if res.Colour != "#000000" {
		t.Errorf("Colour = %s, want #000000", res.Colour)
	}
	if res.Diagnostic != DiagnosticInvalidInput {
		t.Errorf("Diagnostic = %s, want %s", res.Diagnostic, DiagnosticInvalidInput)
	}
	if !strings.Contains(logs.String(), "invalid background colour") {
		t.Errorf("expected a diagnostic, got %q", logs.String())
	}
	if !strings.Contains(logs.String(), "[WARN]") {
		t.Errorf("expected a warning level diagnostic, got %q", logs.String())
	}
}

func TestResolveInvalidInputUsesConfiguredDark(t *testing.T) {
	r, _ := newTestResolver(WithDarkColour("#222222"))
	if got := r.Resolve(""); got != "#222222" {
		t.Errorf("Resolve(\"\") = %s, want #222222", got)
	}
	if got := r.ResolveColour(nil); got.Colour != "#222222" || got.Diagnostic != DiagnosticInvalidInput {
		t.Errorf("ResolveColour(nil) = %+v", got)
	}
}

func TestResolveFullyTransparent(t *testing.T) {
	for _, bg := range []string{"transparent", "rgba(255, 255, 255, 0)", "#fff0"} {
		t.Run(bg, func(t *testing.T) {
			r, logs := newTestResolver(WithDarkColour("#111111"), WithStrategy(StrategyComplementary))
			res := r.ResolveDetail(bg)
			if res.Colour != "#111111" {
				t.Errorf("Colour = %s, want #111111", res.Colour)
			}
			if res.Diagnostic != DiagnosticTransparent {
				t.Errorf("Diagnostic = %s, want %s", res.Diagnostic, DiagnosticTransparent)
			}
			if !strings.Contains(logs.String(), "fully transparent") {
				t.Errorf("expected a diagnostic, got %q", logs.String())
			}
		})
	}
}

func TestResolveTranslucentIsFlattenedOverWhite(t *testing.T) {
	r, _ := newTestResolver()
	res := r.ResolveDetail("rgba(0, 0, 0, 0.5)")

	if res.Background != "#808080" {
		t.Errorf("Background = %s, want #808080", res.Background)
	}
	if res.Colour != "#FFFFFF" {
		t.Errorf("Colour = %s, want #FFFFFF", res.Colour)
	}

	// Nearly transparent black reads as white.
	if got := r.Resolve("rgba(0, 0, 0, 0.05)"); got != "#000000" {
		t.Errorf("Resolve(nearly transparent black) = %s, want #000000", got)
	}
}

func TestResolveTranslucentRotatesFlattenedColour(t *testing.T) {
	r, _ := newTestResolver(WithStrategy(StrategyComplementary))
	want := colour.Spin(colour.MustParse("#ffbfbf"), 180).Hex()
	if got := r.Resolve("rgba(255, 0, 0, 0.25)"); got != want {
		t.Errorf("Resolve() = %s, want %s", got, want)
	}
}

func TestResolveAchromaticFallback(t *testing.T) {
	for _, s := range []Strategy{StrategyAnalogous, StrategyAdjacent, StrategyContrast, StrategyComplementary, StrategyCustom} {
		t.Run(s.String(), func(t *testing.T) {
			r, logs := newTestResolver(WithStrategy(s), WithCustomDegree(90))
			res := r.ResolveDetail("#808080")

			if res.Colour != "#FFFFFF" {
				t.Errorf("Colour = %s, want #FFFFFF", res.Colour)
			}
			if res.Diagnostic != DiagnosticAchromatic {
				t.Errorf("Diagnostic = %s, want %s", res.Diagnostic, DiagnosticAchromatic)
			}
			if res.Strategy != StrategyAccessibility {
				t.Errorf("Strategy = %s, want accessibility", res.Strategy)
			}
			if !strings.Contains(logs.String(), "no hue") {
				t.Errorf("expected a diagnostic, got %q", logs.String())
			}
		})
	}
}

func TestResolveComplementarySelfCollision(t *testing.T) {
	tests := []struct {
		background string
		want       string
	}{
		{background: "#000000", want: "#FFFFFF"},
		{background: "#FFFFFF", want: "#000000"},
		{background: "black", want: "#FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.background, func(t *testing.T) {
			r, logs := newTestResolver(WithStrategy(StrategyComplementary))
			res := r.ResolveDetail(tt.background)

			if res.Colour != tt.want {
				t.Errorf("Colour = %s, want %s", res.Colour, tt.want)
			}
			if res.Diagnostic != DiagnosticSelfCollision {
				t.Errorf("Diagnostic = %s, want %s", res.Diagnostic, DiagnosticSelfCollision)
			}
			if !strings.Contains(logs.String(), "complementary") {
				t.Errorf("expected a diagnostic, got %q", logs.String())
			}
		})
	}
}

func TestResolveBlackAndWhiteFallBackForOtherHueStrategies(t *testing.T) {
	r, _ := newTestResolver(WithStrategy(StrategyAdjacent))
	for bg, want := range map[string]string{"#000000": "#FFFFFF", "#FFFFFF": "#000000"} {
		res := r.ResolveDetail(bg)
		if res.Colour != want || res.Diagnostic != DiagnosticAchromatic {
			t.Errorf("ResolveDetail(%s) = %+v, want %s with achromatic fallback", bg, res, want)
		}
	}
}

func TestResolveCustomIdentity(t *testing.T) {
	r, _ := newTestResolver(WithStrategy(StrategyCustom), WithCustomDegree(0))
	if got := r.Resolve("#3366FF"); got != "#3366ff" {
		t.Errorf("Resolve() = %s, want #3366ff", got)
	}

	// Unset degree behaves like zero.
	if got := Resolve("#3366FF", WithStrategy(StrategyCustom), WithLogger(nil)); got != "#3366ff" {
		t.Errorf("Resolve() with unset degree = %s, want #3366ff", got)
	}
}

func TestResolveCustomNonFiniteDegree(t *testing.T) {
	for _, deg := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), math.Copysign(0, -1)} {
		r, _ := newTestResolver(WithStrategy(StrategyCustom), WithCustomDegree(deg))
		if got := r.Resolve("#3366FF"); got != "#3366ff" {
			t.Errorf("Resolve() with degree %v = %s, want #3366ff", deg, got)
		}
	}
}

func TestResolveComplementaryOfRed(t *testing.T) {
	r, _ := newTestResolver(WithStrategy(StrategyComplementary))
	got := r.Resolve("#FF0000")

	c, err := colour.Parse(got)
	if err != nil {
		t.Fatalf("result %q is not a colour: %v", got, err)
	}
	if d := colour.HueDistance(c.Hue(), 0); math.Abs(d-180) > 1 {
		t.Errorf("hue of %s is %v degrees from red, want 180", got, d)
	}
}

func TestResolveStrategyDegrees(t *testing.T) {
	base := colour.MustParse("#ff0000")

	tests := []struct {
		strategy Strategy
		degrees  float64
	}{
		{strategy: StrategyAnalogous, degrees: 15},
		{strategy: StrategyAdjacent, degrees: 60},
		{strategy: StrategyContrast, degrees: 120},
		{strategy: StrategyComplementary, degrees: 180},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			r, _ := newTestResolver(WithStrategy(tt.strategy))
			res := r.ResolveDetail(base.Hex())
			if res.Diagnostic != DiagnosticNone {
				t.Fatalf("unexpected diagnostic %s", res.Diagnostic)
			}
			if res.Strategy != tt.strategy {
				t.Errorf("Strategy = %s, want %s", res.Strategy, tt.strategy)
			}
			got := colour.MustParse(res.Colour).Hue()
			if d := colour.HueDistance(got, tt.degrees); d > 1 {
				t.Errorf("hue = %v, want %v", got, tt.degrees)
			}
		})
	}
}

func TestResolveDirectionSymmetry(t *testing.T) {
	const bg = "#3366ff"
	baseHue := colour.MustParse(bg).Hue()

	cw, _ := newTestResolver(WithStrategy(StrategyAdjacent), WithDirection(DirectionClockwise))
	ccw, _ := newTestResolver(WithStrategy(StrategyAdjacent), WithDirection(DirectionCounterClockwise))

	cwHex := cw.Resolve(bg)
	ccwHex := ccw.Resolve(bg)

	if cwHex == ccwHex {
		t.Fatalf("clockwise and counter-clockwise both gave %s", cwHex)
	}

	cwHue := colour.MustParse(cwHex).Hue()
	ccwHue := colour.MustParse(ccwHex).Hue()

	if d := colour.HueDistance(cwHue, math.Mod(baseHue+60, 360)); d > 1 {
		t.Errorf("clockwise hue = %v, want %v", cwHue, math.Mod(baseHue+60, 360))
	}
	if d := colour.HueDistance(ccwHue, math.Mod(baseHue+300, 360)); d > 1 {
		t.Errorf("counter-clockwise hue = %v, want %v", ccwHue, math.Mod(baseHue+300, 360))
	}
}

func TestResolveUnknownStrategyIsAccessibility(t *testing.T) {
	r, _ := newTestResolver(WithStrategy(Strategy(42)))
	res := r.ResolveDetail("#3366ff")
	if res.Colour != "#FFFFFF" || res.Strategy != StrategyAccessibility || res.Diagnostic != DiagnosticNone {
		t.Errorf("ResolveDetail() = %+v", res)
	}
}

func TestResolveOutOfRangeThresholdPropagates(t *testing.T) {
	above, _ := newTestResolver(WithThreshold(2))
	if got := above.Resolve("#ffffff"); got != "#FFFFFF" {
		t.Errorf("threshold 2 on white = %s, want #FFFFFF", got)
	}

	below, _ := newTestResolver(WithThreshold(-1))
	if got := below.Resolve("#000000"); got != "#000000" {
		t.Errorf("threshold -1 on black = %s, want #000000", got)
	}
}

func TestResolveCustomColours(t *testing.T) {
	r, _ := newTestResolver(WithLightColour("ivory"), WithDarkColour("#1e1e2e"))
	if got := r.Resolve("#fafafa"); got != "#1e1e2e" {
		t.Errorf("Resolve(light) = %s, want #1e1e2e", got)
	}
	if got := r.Resolve("#101010"); got != "ivory" {
		t.Errorf("Resolve(dark) = %s, want ivory", got)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	inputs := []string{"#3366ff", "rgba(10, 200, 30, 0.3)", "not-a-color", "#808080", "transparent"}
	for _, s := range Strategies() {
		r, _ := newTestResolver(WithStrategy(s), WithCustomDegree(42))
		for _, in := range inputs {
			first := r.ResolveDetail(in)
			second := r.ResolveDetail(in)
			if first != second {
				t.Errorf("%s %q: %+v != %+v", s, in, first, second)
			}
		}
	}
}

func TestResolveConcurrent(t *testing.T) {
	r := New(WithStrategy(StrategyContrast), WithLogger(nil))
	want := r.Resolve("#3366ff")

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := r.Resolve("#3366ff"); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent Resolve() = %s, want %s", got, want)
	}
}

func TestResolveColour(t *testing.T) {
	r, _ := newTestResolver()
	res := r.ResolveColour(color.RGBA{R: 255, G: 255, B: 0, A: 255})
	if res.Colour != "#000000" || res.Background != "#ffff00" {
		t.Errorf("ResolveColour(yellow) = %+v", res)
	}
}

func TestDiagnosticString(t *testing.T) {
	tests := map[Diagnostic]string{
		DiagnosticNone:          "none",
		DiagnosticInvalidInput:  "invalid-input",
		DiagnosticTransparent:   "transparent",
		DiagnosticAchromatic:    "achromatic-fallback",
		DiagnosticSelfCollision: "complementary-self-collision",
		Diagnostic(99):          "unknown",
	}
	for d, want := range tests {
		if got := d.String(); got != want {
			t.Errorf("Diagnostic(%d).String() = %s, want %s", int(d), got, want)
		}
	}
}
