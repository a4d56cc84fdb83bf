package civil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOf_FixedTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	// 01:30 UTC is still the previous day in BRT (UTC-3).
	instant := time.Date(2024, 5, 2, 1, 30, 0, 0, time.UTC)
	d := DateOf(instant, loc)
	if d.String() != "2024-05-01" {
		t.Errorf("DateOf() = %s, want 2024-05-01", d)
	}
}

func TestDateOf_NilLocation(t *testing.T) {
	instant := time.Date(2024, 5, 2, 1, 30, 0, 0, time.UTC)
	d := DateOf(instant, nil)
	if d.String() != "2024-05-02" {
		t.Errorf("DateOf() = %s, want 2024-05-02", d)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-01")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.Year != 2024 || d.Month != time.May || d.Day != 1 {
		t.Errorf("ParseDate() = %+v", d)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Error("ParseDate() should fail on garbage input")
	}
}

func TestAddDays_MonthBoundary(t *testing.T) {
	d := Date{Year: 2024, Month: time.May, Day: 31}
	next := d.AddDays(1)
	if next.String() != "2024-06-01" {
		t.Errorf("AddDays(1) = %s, want 2024-06-01", next)
	}
}

func TestAddDays_YearBoundary(t *testing.T) {
	d := Date{Year: 2024, Month: time.December, Day: 31}
	next := d.AddDays(1)
	if next.String() != "2025-01-01" {
		t.Errorf("AddDays(1) = %s, want 2025-01-01", next)
	}
}

func TestBefore(t *testing.T) {
	a := Date{Year: 2024, Month: time.May, Day: 1}
	b := Date{Year: 2024, Month: time.May, Day: 2}
	if !a.Before(b) {
		t.Error("a should be before b")
	}
	if b.Before(a) {
		t.Error("b should not be before a")
	}
	if a.Before(a) {
		t.Error("a should not be before itself")
	}
}

func TestDaysSince(t *testing.T) {
	a := Date{Year: 2024, Month: time.May, Day: 10}
	b := Date{Year: 2024, Month: time.May, Day: 1}
	if got := a.DaysSince(b); got != 9 {
		t.Errorf("DaysSince() = %d, want 9", got)
	}
	if got := b.DaysSince(a); got != -9 {
		t.Errorf("DaysSince() = %d, want -9", got)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := Date{Year: 2024, Month: time.May, Day: 1}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2024-05-01"` {
		t.Errorf("Marshal() = %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("round trip = %+v, want %+v", back, d)
	}
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)
	c := FixedClock{Instant: instant}
	if !c.Now().Equal(instant) {
		t.Errorf("Now() = %v, want %v", c.Now(), instant)
	}
}
