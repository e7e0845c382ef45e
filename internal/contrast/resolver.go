package contrast

import (
	"image/color"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/oncolour/internal/colour"
)

// Diagnostic describes why a resolution did not follow the plain path.
type Diagnostic int

const (
	// DiagnosticNone means the configured strategy produced the result.
	DiagnosticNone Diagnostic = iota
	// DiagnosticInvalidInput means the background could not be parsed.
	DiagnosticInvalidInput
	// DiagnosticTransparent means the background was fully transparent.
	DiagnosticTransparent
	// DiagnosticAchromatic means a hue strategy fell back to accessibility
	// because the background has no hue.
	DiagnosticAchromatic
	// DiagnosticSelfCollision means the complementary strategy fell back to
	// accessibility because the background is pure black or white.
	DiagnosticSelfCollision
)

// String returns the diagnostic name.
func (d Diagnostic) String() string {
	switch d {
	case DiagnosticNone:
		return "none"
	case DiagnosticInvalidInput:
		return "invalid-input"
	case DiagnosticTransparent:
		return "transparent"
	case DiagnosticAchromatic:
		return "achromatic-fallback"
	case DiagnosticSelfCollision:
		return "complementary-self-collision"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Diagnostic) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Result is the outcome of resolving a background colour.
type Result struct {
	// Colour is the text colour to use.
	Colour string `json:"colour"`
	// Background is the hex of the colour the decision was made on, after
	// flattening any transparency over white. Empty when the input was
	// invalid or fully transparent.
	Background string `json:"background,omitempty"`
	// Luminance is the WCAG relative luminance of Background.
	Luminance float64 `json:"luminance"`
	// Strategy is the strategy that produced Colour, which differs from the
	// configured one after a fallback.
	Strategy Strategy `json:"strategy"`
	// Diagnostic records any fallback taken.
	Diagnostic Diagnostic `json:"diagnostic"`
}

// Resolver picks text colours. It holds no mutable state and is safe for
// concurrent use.
type Resolver struct {
	opts   Options
	logger hclog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOptions replaces all options at once.
func WithOptions(o Options) Option {
	return func(r *Resolver) { r.opts = o }
}

// WithStrategy sets the strategy.
func WithStrategy(s Strategy) Option {
	return func(r *Resolver) { r.opts.Strategy = s }
}

// WithThreshold sets the luminance above which the dark colour is chosen.
func WithThreshold(threshold float64) Option {
	return func(r *Resolver) { r.opts.Threshold = threshold }
}

// WithLightColour sets the colour returned for dark backgrounds.
func WithLightColour(c string) Option {
	return func(r *Resolver) { r.opts.LightColour = c }
}

// WithDarkColour sets the colour returned for light backgrounds and on error.
func WithDarkColour(c string) Option {
	return func(r *Resolver) { r.opts.DarkColour = c }
}

// WithDirection sets the hue rotation direction.
func WithDirection(d Direction) Option {
	return func(r *Resolver) { r.opts.Direction = d }
}

// WithCustomDegree sets the rotation used by StrategyCustom.
func WithCustomDegree(degrees float64) Option {
	return func(r *Resolver) { r.opts.CustomDegree = degrees }
}

// WithLogger sets the diagnostic sink. A nil logger discards diagnostics.
func WithLogger(l hclog.Logger) Option {
	return func(r *Resolver) {
		if l == nil {
			l = hclog.NewNullLogger()
		}
		r.logger = l
	}
}

// defaultLogger mirrors console warnings: warn level to stderr.
var defaultLogger = hclog.New(&hclog.LoggerOptions{
	Name:   "oncolour",
	Output: os.Stderr,
	Level:  hclog.Warn,
})

// New creates a Resolver with default options and applies opts in order.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		opts:   DefaultOptions(),
		logger: defaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the text colour for background using a one-off Resolver.
func Resolve(background string, opts ...Option) string {
	return New(opts...).Resolve(background)
}

// Options returns the effective options.
func (r *Resolver) Options() Options {
	return r.opts
}

// Resolve returns the text colour for a textual background colour.
// It never fails: unusable input yields the dark colour.
func (r *Resolver) Resolve(background string) string {
	return r.ResolveDetail(background).Colour
}

// ResolveDetail is like Resolve but reports how the colour was chosen.
func (r *Resolver) ResolveDetail(background string) Result {
	bg, err := colour.Parse(background)
	if err != nil {
		r.logger.Warn("invalid background colour, using dark colour",
			"input", background, "dark", r.opts.DarkColour, "error", err)
		return r.fail(DiagnosticInvalidInput)
	}
	return r.resolve(bg, background)
}

// ResolveColour resolves an already parsed colour.
func (r *Resolver) ResolveColour(c color.Color) Result {
	if c == nil {
		r.logger.Warn("nil background colour, using dark colour", "dark", r.opts.DarkColour)
		return r.fail(DiagnosticInvalidInput)
	}
	bg := colour.FromColor(c)
	return r.resolve(bg, bg.String())
}

func (r *Resolver) fail(d Diagnostic) Result {
	return Result{
		Colour:     r.opts.DarkColour,
		Strategy:   r.opts.Strategy,
		Diagnostic: d,
	}
}

func (r *Resolver) resolve(bg colour.Colour, input string) Result {
	if bg.A <= 0 {
		r.logger.Warn("background colour is fully transparent, contrast is undefined; using dark colour",
			"input", input, "dark", r.opts.DarkColour)
		return r.fail(DiagnosticTransparent)
	}

	// Treat translucent backgrounds as drawn on a white canvas.
	working := bg.Flatten(colour.White)
	lum := colour.Luminance(working)

	res := Result{
		Background: working.Hex(),
		Luminance:  lum,
		Strategy:   r.opts.Strategy,
	}

	degrees, rotates := r.opts.rotation()
	if !rotates {
		res.Colour = r.accessible(lum)
		res.Strategy = StrategyAccessibility
		return res
	}

	if r.opts.Strategy == StrategyComplementary && (res.Background == "#000000" || res.Background == "#ffffff") {
		r.logger.Info("complementary of pure black or white is degenerate, falling back to accessibility",
			"input", input, "background", res.Background)
		return r.fallback(res, DiagnosticSelfCollision)
	}

	if working.IsAchromatic() {
		r.logger.Info("background has no hue, falling back to accessibility",
			"input", input, "background", res.Background, "strategy", r.opts.Strategy)
		return r.fallback(res, DiagnosticAchromatic)
	}

	res.Colour = colour.Spin(working, degrees).Hex()
	r.logger.Debug("rotated background hue",
		"input", input, "strategy", r.opts.Strategy, "degrees", degrees, "result", res.Colour)
	return res
}

func (r *Resolver) fallback(res Result, d Diagnostic) Result {
	res.Colour = r.accessible(res.Luminance)
	res.Strategy = StrategyAccessibility
	res.Diagnostic = d
	return res
}

// accessible picks dark text for bright backgrounds and light text otherwise.
func (r *Resolver) accessible(luminance float64) string {
	if luminance > r.opts.Threshold {
		return r.opts.DarkColour
	}
	return r.opts.LightColour
}
