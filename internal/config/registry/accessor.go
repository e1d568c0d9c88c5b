package registry

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/backchannel/internal/config/validate"
	"github.com/dustin/go-humanize"
)

// Typed reads over rendered values. Each call renders once, so a random
// line buffer yields a fresh pick per call.

// String renders a setting.
func (r *Registry) String(name string) (string, error) {
	return r.Value(name)
}

// Bool renders a boolean setting.
func (r *Registry) Bool(name string) (bool, error) {
	v, err := r.Value(name)
	if err != nil {
		return false, err
	}
	switch v {
	case "True":
		return true, nil
	case "False":
		return false, nil
	}
	return false, &TypeError{Name: NormalizeName(name), Expected: "boolean", Actual: v}
}

// Int renders an integer setting.
func (r *Registry) Int(name string) (int, error) {
	v, err := r.Value(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &TypeError{Name: NormalizeName(name), Expected: "integer", Actual: v}
	}
	return n, nil
}

// Bytes renders a byte size setting ("4 KiB") as a number of bytes.
func (r *Registry) Bytes(name string) (uint64, error) {
	v, err := r.Value(name)
	if err != nil {
		return 0, err
	}
	n, err := humanize.ParseBytes(v)
	if err != nil {
		return 0, &TypeError{Name: NormalizeName(name), Expected: "byte size", Actual: v}
	}
	return n, nil
}

// Interval renders a delay range setting ("1-10", in seconds).
func (r *Registry) Interval(name string) (lo, hi time.Duration, err error) {
	v, err := r.Value(name)
	if err != nil {
		return 0, 0, err
	}
	lo, hi, ok := parseInterval(v)
	if !ok {
		return 0, 0, &TypeError{Name: NormalizeName(name), Expected: "interval", Actual: v}
	}
	return lo, hi, nil
}

// Delay picks a random wait within an interval setting.
func (r *Registry) Delay(name string) (time.Duration, error) {
	lo, hi, err := r.Interval(name)
	if err != nil {
		return 0, err
	}
	if hi <= lo {
		return lo, nil
	}
	return lo + rand.N(hi-lo), nil
}

func parseInterval(v string) (lo, hi time.Duration, ok bool) {
	min, max, err := validate.ParseInterval(v)
	if err != nil {
		return 0, 0, false
	}
	return seconds(min), seconds(max), true
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

// TypeError is returned when a rendered value cannot be converted.
type TypeError struct {
	Name     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error at %s: expected %s, got %q", e.Name, e.Expected, e.Actual)
}
