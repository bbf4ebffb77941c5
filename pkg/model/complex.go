package model

import (
	"strconv"
	"strings"

	"github.com/dchassin/plot-glm/pkg/errors"
)

// ParseComplex parses a complex quantity of the form <real>[+|-<imag>j],
// e.g. "5000", "-120.5", "1234.5+67.8j", "-1.2e3-4j".
//
// GridLAB-D serializes complex properties with a trailing 'j' on the
// imaginary part, which the Go complex literal grammar does not accept, so
// this is a dedicated parser rather than strconv.ParseComplex. Only the
// rectangular form is handled; the caller is expected to have stripped any
// unit suffix (see ParsePower).
func ParseComplex(s string) (re, im float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, errors.New(errors.ErrCodeBadPowerValue, "empty complex value")
	}

	if !strings.HasSuffix(s, "j") && !strings.HasSuffix(s, "i") {
		re, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, 0, errors.Wrap(errors.ErrCodeBadPowerValue, err, "parse %q", s)
		}
		return re, 0, nil
	}

	body := s[:len(s)-1]
	split := imagSplit(body)
	if split <= 0 {
		// No real part: the whole token is imaginary, e.g. "2.5j".
		im, err = strconv.ParseFloat(body, 64)
		if err != nil {
			return 0, 0, errors.Wrap(errors.ErrCodeBadPowerValue, err, "parse %q", s)
		}
		return 0, im, nil
	}

	re, err = strconv.ParseFloat(body[:split], 64)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeBadPowerValue, err, "parse real part of %q", s)
	}
	im, err = strconv.ParseFloat(body[split:], 64)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeBadPowerValue, err, "parse imaginary part of %q", s)
	}
	return re, im, nil
}

// imagSplit returns the index of the sign separating the real and imaginary
// parts, or -1 if there is none. Signs at position 0 or following an
// exponent marker do not separate parts.
func imagSplit(s string) int {
	for i := len(s) - 1; i > 0; i-- {
		c := s[i]
		if c != '+' && c != '-' {
			continue
		}
		prev := s[i-1]
		if prev == 'e' || prev == 'E' {
			continue
		}
		return i
	}
	return -1
}

// ParsePower extracts the real power component from a power_out property.
// Only the substring before the first whitespace is parsed as a complex
// number; the remainder (the unit, e.g. "VA") is ignored.
func ParsePower(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, errors.New(errors.ErrCodeBadPowerValue, "empty power value")
	}
	re, _, err := ParseComplex(fields[0])
	if err != nil {
		return 0, err
	}
	return re, nil
}
