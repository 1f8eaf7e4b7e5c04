// Package market decides whether the exchange's primary session is open,
// which selects intraday versus daily data mode for a run.
package market

import "time"

// Session is an exchange trading window, evaluated in the exchange's own
// time zone on weekdays only.
type Session struct {
	loc        *time.Location
	openHour   int
	openMin    int
	closeHour  int
	closeMin   int
}

func NewSession(timezone string, openHour, openMin, closeHour, closeMin int) (*Session, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Session{
		loc:       loc,
		openHour:  openHour,
		openMin:   openMin,
		closeHour: closeHour,
		closeMin:  closeMin,
	}, nil
}

// IsOpen reports whether t falls inside the session window. The open instant
// itself counts as open; the close instant does not.
func (s *Session) IsOpen(t time.Time) bool {
	local := t.In(s.loc)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	open := s.openHour*60 + s.openMin
	end := s.closeHour*60 + s.closeMin
	return minutes >= open && minutes < end
}

// IsOpenNow is IsOpen at the current wall clock.
func (s *Session) IsOpenNow() bool {
	return s.IsOpen(time.Now())
}
