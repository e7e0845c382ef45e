package contrast

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by EnvOptions.
const (
	EnvStrategy  = "ONCOLOUR_STRATEGY"
	EnvThreshold = "ONCOLOUR_THRESHOLD"
	EnvLight     = "ONCOLOUR_LIGHT"
	EnvDark      = "ONCOLOUR_DARK"
	EnvDirection = "ONCOLOUR_DIRECTION"
	EnvDegree    = "ONCOLOUR_DEGREE"
)

// EnvOptions builds options from ONCOLOUR_* environment variables.
// Unset or empty variables are skipped. All malformed values are reported together.
func EnvOptions() ([]Option, error) {
	var (
		opts []Option
		errs []error
	)

	if v, ok := lookupEnv(EnvStrategy); ok {
		s, err := ParseStrategy(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvStrategy, err))
		} else {
			opts = append(opts, WithStrategy(s))
		}
	}

	if v, ok := lookupEnv(EnvThreshold); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid number %q", EnvThreshold, v))
		} else {
			opts = append(opts, WithThreshold(f))
		}
	}

	if v, ok := lookupEnv(EnvLight); ok {
		opts = append(opts, WithLightColour(v))
	}

	if v, ok := lookupEnv(EnvDark); ok {
		opts = append(opts, WithDarkColour(v))
	}

	if v, ok := lookupEnv(EnvDirection); ok {
		d, err := ParseDirection(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvDirection, err))
		} else {
			opts = append(opts, WithDirection(d))
		}
	}

	if v, ok := lookupEnv(EnvDegree); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid number %q", EnvDegree, v))
		} else {
			opts = append(opts, WithCustomDegree(f))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return opts, nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
