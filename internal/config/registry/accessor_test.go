package registry

import (
	"errors"
	"testing"
	"time"
)

func TestAccessor_Defaults(t *testing.T) {
	r, _ := newTestRegistry(t)

	verbose, err := r.Bool("VERBOSITY")
	if err != nil || verbose {
		t.Errorf("Bool(VERBOSITY) = %v, %v", verbose, err)
	}

	headers, err := r.Int("REQ_MAX_HEADERS")
	if err != nil || headers != 100 {
		t.Errorf("Int(REQ_MAX_HEADERS) = %d, %v", headers, err)
	}

	size, err := r.Bytes("REQ_MAX_HEADER_SIZE")
	if err != nil || size != 4096 {
		t.Errorf("Bytes(REQ_MAX_HEADER_SIZE) = %d, %v", size, err)
	}

	lo, hi, err := r.Interval("REQ_INTERVAL")
	if err != nil || lo != time.Second || hi != 10*time.Second {
		t.Errorf("Interval(REQ_INTERVAL) = %v, %v, %v", lo, hi, err)
	}

	s, err := r.String("passkey")
	if err != nil || s != "phpSpl01t" {
		t.Errorf("String(passkey) = %q, %v", s, err)
	}
}

func TestAccessor_Delay(t *testing.T) {
	r, _ := newTestRegistry(t)

	if err := r.Set("REQ_INTERVAL", "0.5-1.5"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	for i := 0; i < 100; i++ {
		d, err := r.Delay("REQ_INTERVAL")
		if err != nil {
			t.Fatalf("Delay: %v", err)
		}
		if d < 500*time.Millisecond || d >= 1500*time.Millisecond {
			t.Fatalf("Delay = %v, out of range", d)
		}
	}

	if err := r.Set("REQ_INTERVAL", "3"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if d, _ := r.Delay("REQ_INTERVAL"); d != 3*time.Second {
		t.Errorf("Delay = %v, want 3s", d)
	}
}

func TestAccessor_TypeError(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Int("PASSKEY")
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("expected TypeError, got %v", err)
	}
	if te.Name != "PASSKEY" || te.Expected != "integer" {
		t.Errorf("unexpected TypeError: %+v", te)
	}

	if _, err := r.Bool("HTTP_NOPE"); !errors.Is(err, ErrNotSet) {
		t.Errorf("Bool(unset) = %v, want ErrNotSet", err)
	}
}

func TestAccessor_IntervalRejectsNonFinite(t *testing.T) {
	r, _ := newTestRegistry(t)

	for _, v := range []string{"NaN", "Inf", "1-Inf", "1e10-2e10"} {
		if err := r.Set("REQ_INTERVAL", v); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("Set(REQ_INTERVAL, %q) = %v, want ErrInvalidValue", v, err)
		}
	}

	d, err := r.Delay("REQ_INTERVAL")
	if err != nil {
		t.Fatalf("Delay: %v", err)
	}
	if d < time.Second || d >= 10*time.Second {
		t.Errorf("Delay = %v, want within default 1-10s", d)
	}
}
