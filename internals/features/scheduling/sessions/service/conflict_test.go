package service

import "testing"

// Interval jadwal half-open [start, end): sesi yang berakhir 11:00 tidak
// bentrok dengan sesi yang mulai 11:00.
func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identik", "09:00", "11:00", "09:00", "11:00", true},
		{"overlap sebagian", "09:00", "11:00", "10:00", "12:00", true},
		{"b di dalam a", "09:00", "13:00", "10:00", "11:00", true},
		{"a di dalam b", "10:00", "11:00", "09:00", "13:00", true},
		{"bersinggungan di batas (a lalu b)", "09:00", "11:00", "11:00", "13:00", false},
		{"bersinggungan di batas (b lalu a)", "11:00", "13:00", "09:00", "11:00", false},
		{"terpisah jauh", "08:00", "09:00", "15:00", "16:00", false},
		{"lewat tengah hari", "11:30", "13:30", "12:00", "12:30", true},
		{"selisih satu menit", "09:00", "10:59", "10:58", "12:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Fatalf("Overlaps(%s-%s, %s-%s) = %v, want %v",
					tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
		})
	}
}

// Jam harus sudah dinormalisasi zero-padded; properti simetri berlaku
// untuk semua pasangan.
func TestOverlapsSymmetric(t *testing.T) {
	pairs := [][4]string{
		{"09:00", "11:00", "10:00", "12:00"},
		{"09:00", "11:00", "11:00", "13:00"},
		{"08:00", "17:00", "12:00", "12:30"},
	}
	for _, p := range pairs {
		ab := Overlaps(p[0], p[1], p[2], p[3])
		ba := Overlaps(p[2], p[3], p[0], p[1])
		if ab != ba {
			t.Fatalf("Overlaps tidak simetris untuk %v: ab=%v ba=%v", p, ab, ba)
		}
	}
}
