// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every error caused by invalid caller input:
	// cluster counts, ratios, orientation tokens, colour components.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidColour is returned when a colour component is outside 0-255
	// or a colour string cannot be parsed.
	ErrInvalidColour = fmt.Errorf("%w: invalid colour", ErrConfiguration)

	// ErrAlreadyFitted is returned when Fit is called twice on the same engine.
	ErrAlreadyFitted = errors.New("kmeans: engine has already been fitted")
)

// configErrorf formats an error that matches ErrConfiguration.
func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
