package playback

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidLocator is returned for a track locator no pipeline may be pointed at.
var ErrInvalidLocator = errors.New("invalid media locator")

// ValidateLocator rejects empty locators, control characters, anything a pipeline could
// read as a command line flag and URLs that are not http(s). Plain paths are accepted.
func ValidateLocator(locator string) error {
	l := strings.TrimSpace(locator)
	switch {
	case l == "":
		return fmt.Errorf("%w: empty", ErrInvalidLocator)
	case strings.ContainsAny(l, "\x00\n\r"):
		return fmt.Errorf("%w: control characters", ErrInvalidLocator)
	case strings.HasPrefix(l, "-"):
		return fmt.Errorf("%w: starts with '-'", ErrInvalidLocator)
	}

	if !strings.Contains(l, "://") {
		return nil
	}

	u, err := url.Parse(l)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLocator, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocator, u.Scheme)
	}
}
