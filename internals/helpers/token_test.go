package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// jalankan fn di dalam handler fiber supaya Locals bisa diisi dulu.
func runInHandler(t *testing.T, locals map[string]any, fn func(c *fiber.Ctx)) {
	t.Helper()
	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		for k, v := range locals {
			c.Locals(k, v)
		}
		fn(c)
		return nil
	})
	if _, err := app.Test(httptest.NewRequest("GET", "/t", nil)); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
}

func TestGetUserIDFromToken(t *testing.T) {
	want := uuid.New()

	tests := []struct {
		name    string
		locals  map[string]any
		wantID  uuid.UUID
		wantErr bool
	}{
		{"uuid langsung", map[string]any{"user_id": want}, want, false},
		{"string uuid", map[string]any{"user_id": want.String()}, want, false},
		{"string dengan spasi", map[string]any{"user_id": " " + want.String() + " "}, want, false},
		{"belum login", nil, uuid.Nil, true},
		{"uuid nil", map[string]any{"user_id": uuid.Nil}, uuid.Nil, true},
		{"string kosong", map[string]any{"user_id": "  "}, uuid.Nil, true},
		{"string bukan uuid", map[string]any{"user_id": "bukan-uuid"}, uuid.Nil, true},
		{"tipe tidak dikenal", map[string]any{"user_id": 42}, uuid.Nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runInHandler(t, tt.locals, func(c *fiber.Ctx) {
				got, err := GetUserIDFromToken(c)
				if (err != nil) != tt.wantErr {
					t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
				}
				if got != tt.wantID {
					t.Errorf("id = %s, want %s", got, tt.wantID)
				}
			})
		})
	}
}

func TestGetRoleFromToken(t *testing.T) {
	tests := []struct {
		name   string
		locals map[string]any
		want   string
	}{
		{"role terisi", map[string]any{"role": "admin"}, "admin"},
		{"role dengan spasi", map[string]any{"role": " instructor "}, "instructor"},
		{"role kosong", nil, ""},
		{"tipe bukan string", map[string]any{"role": 1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runInHandler(t, tt.locals, func(c *fiber.Ctx) {
				if got := GetRoleFromToken(c); got != tt.want {
					t.Errorf("role = %q, want %q", got, tt.want)
				}
			})
		})
	}
}
