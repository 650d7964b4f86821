// file: internals/features/scheduling/sessions/service/progress.go
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseservice "trainingcenter_backend/internals/features/courses/service"
)

/* =========================
   Progress Emitter (fire-and-forget)
   ========================= */

type ProgressTask struct {
	CourseID     uuid.UUID
	StudentID    uuid.UUID
	LessonsDelta int
	HoursDelta   float64
}

// ProgressEmitter mengirim increment progress ke course_enrollments lewat
// antrian terbatas + satu worker. Kontrak: tidak pernah blocking, tidak
// pernah mempropagasi error ke caller — gagal berarti di-log lalu di-skip.
type ProgressEmitter struct {
	db       *gorm.DB
	svc      *courseservice.ProgressService
	queue    chan ProgressTask
	timeout  time.Duration
	stopOnce sync.Once
	done     chan struct{}
}

func NewProgressEmitter(db *gorm.DB, buffer int) *ProgressEmitter {
	if buffer <= 0 {
		buffer = 256
	}
	e := &ProgressEmitter{
		db:      db,
		svc:     courseservice.NewProgressService(),
		queue:   make(chan ProgressTask, buffer),
		timeout: 3 * time.Second,
		done:    make(chan struct{}),
	}
	go e.worker()
	return e
}

// Emit memasukkan task tanpa blocking; kalau antrian penuh task di-drop
// (operasi pemicunya tetap dianggap sukses).
func (e *ProgressEmitter) Emit(t ProgressTask) {
	select {
	case e.queue <- t:
	default:
		log.Printf("[WARN] progress queue penuh, task di-drop (course=%s student=%s)", t.CourseID, t.StudentID)
	}
}

// EmitAll memasukkan banyak task sekaligus (tetap non-blocking per task).
func (e *ProgressEmitter) EmitAll(tasks []ProgressTask) {
	for i := range tasks {
		e.Emit(tasks[i])
	}
}

func (e *ProgressEmitter) worker() {
	defer close(e.done)
	for t := range e.queue {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		err := e.svc.IncrementProgress(e.db.WithContext(ctx), t.CourseID, t.StudentID, t.LessonsDelta, t.HoursDelta)
		cancel()
		if err != nil {
			log.Printf("[WARN] progress sync gagal, di-skip (course=%s student=%s): %v", t.CourseID, t.StudentID, err)
		}
	}
}

// Close menghentikan worker setelah antrian terkuras (dipakai saat shutdown).
func (e *ProgressEmitter) Close() {
	e.stopOnce.Do(func() { close(e.queue) })
	<-e.done
}
