package helper

import "testing"

func TestNormalizeTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:30", "09:30", false},
		{"9:30", "09:30", false},
		{" 23:59 ", "23:59", false},
		{"0:00", "00:00", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"12", "", true},
		{"", "", true},
		{"ab:cd", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeTimeOfDay(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeTimeOfDay(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeTimeOfDay(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDurationMinutes(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
		wantErr    bool
	}{
		{"09:00", "10:00", 60, false},
		{"09:00", "09:01", 1, false},
		{"0:00", "23:59", 1439, false},
		{"10:00", "10:00", 0, true}, // zero duration
		{"10:00", "09:00", 0, true}, // reversed
		{"10:00", "25:00", 0, true},
	}
	for _, tc := range cases {
		got, err := DurationMinutes(tc.start, tc.end)
		if tc.wantErr {
			if err == nil {
				t.Errorf("DurationMinutes(%q, %q): expected error, got %d", tc.start, tc.end, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("DurationMinutes(%q, %q): unexpected error %v", tc.start, tc.end, err)
			continue
		}
		if got != tc.want {
			t.Errorf("DurationMinutes(%q, %q) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestMinutesOfDay(t *testing.T) {
	if got, err := MinutesOfDay("13:45"); err != nil || got != 825 {
		t.Errorf("MinutesOfDay(13:45) = %d, %v; want 825, nil", got, err)
	}
}
