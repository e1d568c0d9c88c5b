// Package validate provides the value validators used by setting descriptors.
//
// A validator receives one candidate value and returns its accepted form or
// an error describing why it was rejected. Validators never rewrite a valid
// value beyond trimming and canonical casing, so a rendered value always
// stays within the domain the user supplied.
package validate

import (
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// None is the value accepted by optional settings to mean "not set".
const None = "None"

// Func is the validator signature shared by all descriptors.
type Func = func(value string) (string, error)

// Any accepts every value unchanged.
func Any(value string) (string, error) {
	return value, nil
}

// String coerces the value to a trimmed string. Used by dynamic HTTP headers.
func String(value string) (string, error) {
	return strings.TrimSpace(value), nil
}

// Boolean accepts common truth values and returns "True" or "False".
func Boolean(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1", "enabled":
		return "True", nil
	case "false", "no", "off", "0", "disabled":
		return "False", nil
	}
	return "", fmt.Errorf("expected a boolean (True/False)")
}

// Int returns a validator for integers within [min, max].
func Int(min, max int) Func {
	return func(value string) (string, error) {
		v := strings.TrimSpace(value)
		n, err := strconv.Atoi(v)
		if err != nil {
			return "", fmt.Errorf("expected an integer")
		}
		if n < min || n > max {
			return "", fmt.Errorf("must be between %d and %d", min, max)
		}
		return v, nil
	}
}

// ByteSize returns a validator for human byte sizes ("4 KiB", "1MB")
// of at least min bytes.
func ByteSize(min uint64) Func {
	return func(value string) (string, error) {
		v := strings.TrimSpace(value)
		n, err := humanize.ParseBytes(v)
		if err != nil {
			return "", fmt.Errorf("expected a byte size such as '4 KiB'")
		}
		if n < min {
			return "", fmt.Errorf("must be at least %s", humanize.IBytes(min))
		}
		return v, nil
	}
}

// MaxIntervalSeconds is the largest interval bound that still fits a
// time.Duration.
const MaxIntervalSeconds = float64(math.MaxInt64) / float64(time.Second)

// Interval accepts a delay range in seconds: "N" or "MIN-MAX".
func Interval(value string) (string, error) {
	v := strings.TrimSpace(value)
	if _, _, err := ParseInterval(v); err != nil {
		return "", err
	}
	return v, nil
}

// ParseInterval splits an interval into its bounds in seconds. A single
// number yields equal bounds. Both bounds are finite and within
// [0, MaxIntervalSeconds).
func ParseInterval(value string) (min, max float64, err error) {
	lo, hi, found := strings.Cut(strings.TrimSpace(value), "-")
	min, ok := intervalBound(lo)
	if !ok {
		return 0, 0, fmt.Errorf("expected a positive interval such as '1-10'")
	}
	if !found {
		return min, min, nil
	}
	max, ok = intervalBound(hi)
	if !ok || max < min {
		return 0, 0, fmt.Errorf("interval upper bound must be a number >= %v", min)
	}
	return min, max, nil
}

func intervalBound(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, f >= 0 && f < MaxIntervalSeconds
}

// Method accepts the HTTP methods used to carry payloads.
func Method(value string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v != "GET" && v != "POST" {
		return "", fmt.Errorf("expected GET or POST")
	}
	return v, nil
}

var identRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Identifier accepts alphanumeric words usable inside a header name.
func Identifier(value string) (string, error) {
	v := strings.TrimSpace(value)
	if !identRe.MatchString(v) {
		return "", fmt.Errorf("only letters, digits and '_' are allowed")
	}
	return v, nil
}

// Code returns a validator for source code snippets. Every marker must
// appear in the snippet; with no marker, any text (even empty) is accepted.
func Code(markers ...string) Func {
	return func(value string) (string, error) {
		for _, m := range markers {
			if !strings.Contains(value, m) {
				return "", fmt.Errorf("code must contain %s", m)
			}
		}
		return value, nil
	}
}

// ShellCommand accepts a non-empty command line.
func ShellCommand(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("expected a command")
	}
	return v, nil
}

// RemotePath accepts an absolute path on the target, in unix or windows form.
func RemotePath(value string) (string, error) {
	v := strings.TrimSpace(value)
	switch {
	case strings.HasPrefix(v, "/"):
		return v, nil
	case len(v) >= 3 && v[1] == ':' && (v[2] == '\\' || v[2] == '/'):
		return v, nil
	}
	return "", fmt.Errorf("expected an absolute path")
}

// Directory accepts an existing writable directory.
func Directory(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("expected a directory path")
	}
	info, err := os.Stat(v)
	if err != nil {
		return "", fmt.Errorf("directory not found")
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory")
	}
	if info.Mode().Perm()&0o222 == 0 {
		return "", fmt.Errorf("directory is not writable")
	}
	return v, nil
}

// URL accepts an http(s) URL or None.
func URL(value string) (string, error) {
	v := strings.TrimSpace(value)
	if isNone(v) {
		return None, nil
	}
	u, err := url.Parse(v)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("expected an http(s) URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return v, nil
}

var proxySchemes = map[string]bool{
	"http":    true,
	"https":   true,
	"socks4":  true,
	"socks4a": true,
	"socks5":  true,
	"socks5h": true,
}

// Proxy accepts a proxy URL with an explicit port, or None.
func Proxy(value string) (string, error) {
	v := strings.TrimSpace(value)
	if isNone(v) {
		return None, nil
	}
	u, err := url.Parse(v)
	if err != nil {
		return "", fmt.Errorf("expected a proxy URL")
	}
	if !proxySchemes[u.Scheme] {
		return "", fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	if _, port, err := net.SplitHostPort(u.Host); err != nil || port == "" {
		return "", fmt.Errorf("proxy address needs host:port")
	}
	return v, nil
}

func isNone(v string) bool {
	return strings.EqualFold(v, None)
}
