// file: internals/helpers/timeofday.go
package helper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Jam dinding "HH:MM" 24 jam; jam boleh tanpa leading zero ("9:30").
var timeOfDayRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

func validTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

// NormalizeTimeOfDay memastikan bentuk "HH:MM" ber-leading-zero supaya
// perbandingan leksikografis di query SQL aman.
func NormalizeTimeOfDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !validTimeOfDay(s) {
		return "", fmt.Errorf("waktu tidak valid (HH:MM): %q", s)
	}
	parts := strings.SplitN(s, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// MinutesOfDay mengubah "HH:MM" menjadi menit sejak 00:00.
func MinutesOfDay(s string) (int, error) {
	norm, err := NormalizeTimeOfDay(s)
	if err != nil {
		return 0, err
	}
	h, _ := strconv.Atoi(norm[:2])
	m, _ := strconv.Atoi(norm[3:])
	return h*60 + m, nil
}

// DurationMinutes menghitung end - start dalam menit; end wajib > start
// (sesi selalu same-day).
func DurationMinutes(start, end string) (int, error) {
	s, err := MinutesOfDay(start)
	if err != nil {
		return 0, err
	}
	e, err := MinutesOfDay(end)
	if err != nil {
		return 0, err
	}
	if e <= s {
		return 0, fmt.Errorf("end time %s harus setelah start time %s", end, start)
	}
	return e - s, nil
}
