package clock

import (
	"testing"
	"time"
)

func testClock(t *testing.T) *Clock {
	t.Helper()
	c, err := New("Asia/Jakarta")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestTodayUsesConfiguredZone(t *testing.T) {
	c := testClock(t)
	// 2024-03-10 18:30 UTC is already 2024-03-11 01:30 in Jakarta (UTC+7).
	c.WithNow(func() time.Time {
		return time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)
	})
	if got := c.Today(); got != "2024-03-11" {
		t.Errorf("Today() = %q, want %q", got, "2024-03-11")
	}
}

func TestMonthBounds(t *testing.T) {
	c := testClock(t)
	cases := []struct {
		date        string
		first, last string
	}{
		{"2024-02-15", "2024-02-01", "2024-02-29"}, // leap year
		{"2023-02-01", "2023-02-01", "2023-02-28"},
		{"2024-12-31", "2024-12-01", "2024-12-31"},
		{"2024-01-01", "2024-01-01", "2024-01-31"},
	}
	for _, tc := range cases {
		first, last, err := c.MonthBounds(tc.date)
		if err != nil {
			t.Fatalf("MonthBounds(%q): %v", tc.date, err)
		}
		if first != tc.first || last != tc.last {
			t.Errorf("MonthBounds(%q) = (%q, %q), want (%q, %q)", tc.date, first, last, tc.first, tc.last)
		}
	}
}

func TestDateRange(t *testing.T) {
	c := testClock(t)
	dates, err := c.DateRange("2024-02-27", "2024-03-02")
	if err != nil {
		t.Fatalf("DateRange: %v", err)
	}
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(dates) != len(want) {
		t.Fatalf("DateRange returned %d dates, want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("DateRange[%d] = %q, want %q", i, dates[i], want[i])
		}
	}

	empty, err := c.DateRange("2024-03-02", "2024-03-01")
	if err != nil {
		t.Fatalf("DateRange reversed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("reversed range returned %d dates, want 0", len(empty))
	}
}

func TestIsSunday(t *testing.T) {
	c := testClock(t)
	cases := []struct {
		date string
		want bool
	}{
		{"2024-03-10", true},  // Sunday
		{"2024-03-09", false}, // Saturday is a working day
		{"2024-03-11", false}, // Monday
	}
	for _, tc := range cases {
		got, err := c.IsSunday(tc.date)
		if err != nil {
			t.Fatalf("IsSunday(%q): %v", tc.date, err)
		}
		if got != tc.want {
			t.Errorf("IsSunday(%q) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestAddDays(t *testing.T) {
	c := testClock(t)
	got, err := c.AddDays("2024-03-01", -1)
	if err != nil {
		t.Fatalf("AddDays: %v", err)
	}
	if got != "2024-02-29" {
		t.Errorf("AddDays(2024-03-01, -1) = %q, want 2024-02-29", got)
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-01-01", "1999-12-31"}
	invalid := []string{"2024-13-01", "2024-1-1", "01-01-2024", "", "yesterday"}
	for _, s := range valid {
		if !IsValidDate(s) {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidDate(s) {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}
