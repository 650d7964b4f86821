package dto

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

func validCreateRequest() CreateClassSessionRequest {
	return CreateClassSessionRequest{
		ClassSessionCourseID:     uuid.New(),
		ClassSessionInstructorID: uuid.New(),
		ClassSessionVenueName:    "Ruang Jakarta A",
		ClassSessionDate:         "2026-03-02",
		ClassSessionStartTime:    "9:00", // sengaja tanpa leading zero
		ClassSessionEndTime:      "11:30",
		ClassSessionCapacity:     20,
	}
}

func TestCreateToModelNormalizesAndDefaults(t *testing.T) {
	req := validCreateRequest()

	mdl, err := req.ToModel()
	if err != nil {
		t.Fatalf("ToModel: %v", err)
	}

	if mdl.ClassSessionStartTime != "09:00" {
		t.Fatalf("start = %q, want zero-padded 09:00", mdl.ClassSessionStartTime)
	}
	if mdl.ClassSessionDurationMinutes != 150 {
		t.Fatalf("duration = %d, want 150", mdl.ClassSessionDurationMinutes)
	}
	if mdl.ClassSessionMaxEnrollments != 20 {
		t.Fatalf("max enrollments = %d, want default = capacity (20)", mdl.ClassSessionMaxEnrollments)
	}
	if mdl.ClassSessionStatus != m.SessionScheduled {
		t.Fatalf("status = %s, want scheduled", mdl.ClassSessionStatus)
	}
	if mdl.ClassSessionDate.Format("2006-01-02") != "2026-03-02" {
		t.Fatalf("date = %s", mdl.ClassSessionDate)
	}
}

func TestCreateToModelRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *CreateClassSessionRequest)
		wantSub string
	}{
		{
			name:    "end sebelum start",
			mutate:  func(r *CreateClassSessionRequest) { r.ClassSessionStartTime = "14:00"; r.ClassSessionEndTime = "12:00" },
			wantSub: "setelah",
		},
		{
			name:    "durasi lewat batas 8 jam",
			mutate:  func(r *CreateClassSessionRequest) { r.ClassSessionStartTime = "08:00"; r.ClassSessionEndTime = "17:00" },
			wantSub: "melebihi",
		},
		{
			name:    "jam tidak valid",
			mutate:  func(r *CreateClassSessionRequest) { r.ClassSessionStartTime = "25:00" },
			wantSub: "",
		},
		{
			name:    "recurring tanpa pattern",
			mutate:  func(r *CreateClassSessionRequest) { r.ClassSessionIsRecurring = true },
			wantSub: "recurrence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			_, err := req.ToModel()
			if err == nil {
				t.Fatal("err = nil, want error")
			}
			if tt.wantSub != "" && !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("err = %q, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestUpdateApplyToModelTimingChanged(t *testing.T) {
	base, err := validCreateRequest().ToModel()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	newPrice := 150000.0
	newStart := "10:00"
	newVenue := "Ruang Jakarta A" // sama dengan yang lama

	tests := []struct {
		name string
		req  UpdateClassSessionRequest
		want bool
	}{
		{"hanya harga", UpdateClassSessionRequest{ClassSessionPrice: &newPrice}, false},
		{"jam berubah", UpdateClassSessionRequest{ClassSessionStartTime: &newStart}, true},
		{"venue sama tidak dihitung berubah", UpdateClassSessionRequest{ClassSessionVenueName: &newVenue}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mdl := base
			changed, err := tt.req.ApplyToModel(&mdl)
			if err != nil {
				t.Fatalf("ApplyToModel: %v", err)
			}
			if changed != tt.want {
				t.Fatalf("timingChanged = %v, want %v", changed, tt.want)
			}
		})
	}
}

func TestUpdateRejectsMaxBelowEnrolledCount(t *testing.T) {
	mdl, err := validCreateRequest().ToModel()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	for i := 0; i < 3; i++ {
		mdl.ClassSessionEnrollments = append(mdl.ClassSessionEnrollments, m.EnrollmentRecord{
			StudentID: uuid.New(),
			Status:    m.EnrollmentEnrolled,
		})
	}

	lower := 2
	if _, err := (UpdateClassSessionRequest{ClassSessionMaxEnrollments: &lower}).ApplyToModel(&mdl); err == nil {
		t.Fatal("err = nil, want penolakan max di bawah jumlah enrolled")
	}
	if mdl.ClassSessionMaxEnrollments != 20 {
		t.Fatalf("max enrollments berubah jadi %d padahal update ditolak", mdl.ClassSessionMaxEnrollments)
	}

	// sama dengan jumlah enrolled masih boleh
	equal := 3
	if _, err := (UpdateClassSessionRequest{ClassSessionMaxEnrollments: &equal}).ApplyToModel(&mdl); err != nil {
		t.Fatalf("ApplyToModel: %v", err)
	}
	if mdl.ClassSessionMaxEnrollments != 3 {
		t.Fatalf("max enrollments = %d, want 3", mdl.ClassSessionMaxEnrollments)
	}
}

func TestUpdateApplyToModelRecomputesDuration(t *testing.T) {
	mdl, err := validCreateRequest().ToModel()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	newEnd := "13:00"
	if _, err := (UpdateClassSessionRequest{ClassSessionEndTime: &newEnd}).ApplyToModel(&mdl); err != nil {
		t.Fatalf("ApplyToModel: %v", err)
	}
	if mdl.ClassSessionDurationMinutes != 240 { // 09:00-13:00
		t.Fatalf("duration = %d, want 240", mdl.ClassSessionDurationMinutes)
	}
}
