package market

import (
	"testing"
	"time"
)

func newNYSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession("America/New_York", 9, 30, 16, 0)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestIsOpen(t *testing.T) {
	s := newNYSession(t)
	ny, _ := time.LoadLocation("America/New_York")

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		// 2024-03-06 is a Wednesday, 2024-03-09 a Saturday.
		{"exact open boundary", time.Date(2024, 3, 6, 9, 30, 0, 0, ny), true},
		{"one minute before open", time.Date(2024, 3, 6, 9, 29, 0, 0, ny), false},
		{"midday", time.Date(2024, 3, 6, 12, 0, 0, 0, ny), true},
		{"last minute of session", time.Date(2024, 3, 6, 15, 59, 0, 0, ny), true},
		{"exact close boundary", time.Date(2024, 3, 6, 16, 0, 0, 0, ny), false},
		{"after close", time.Date(2024, 3, 6, 18, 0, 0, 0, ny), false},
		{"weekend same clock time", time.Date(2024, 3, 9, 9, 30, 0, 0, ny), false},
		{"sunday", time.Date(2024, 3, 10, 12, 0, 0, 0, ny), false},
	}

	for _, tc := range cases {
		if got := s.IsOpen(tc.t); got != tc.want {
			t.Errorf("%s: IsOpen(%v) = %v, want %v", tc.name, tc.t, got, tc.want)
		}
	}
}

func TestIsOpenConvertsZones(t *testing.T) {
	s := newNYSession(t)

	// March 6 2024 predates the DST switch, so New York is UTC-5 and
	// 14:30 UTC lands exactly on the open.
	utc := time.Date(2024, 3, 6, 14, 30, 0, 0, time.UTC)
	if !s.IsOpen(utc) {
		t.Error("expected open for 14:30 UTC == 09:30 EST")
	}
}

func TestNewSessionRejectsBadZone(t *testing.T) {
	if _, err := NewSession("Not/AZone", 9, 30, 16, 0); err == nil {
		t.Error("expected error for invalid time zone")
	}
}
