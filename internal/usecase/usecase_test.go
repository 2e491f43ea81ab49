package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/repository"
	"clinic-desk-backend/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database per test. The named DSN
// keeps gorm's pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// SQLite has no SELECT ... FOR UPDATE; drop the locking clause the
	// ledger reads request. Writers serialize on the database lock here
	// anyway.
	err = db.Callback().Query().Before("gorm:query").Register("sqlite_drop_for_update", func(d *gorm.DB) {
		delete(d.Statement.Clauses, "FOR")
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Patient{},
		&entity.Doctor{},
		&entity.Room{},
		&entity.Procedure{},
		&entity.Visit{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.PaymentTransaction{},
		&entity.Receipt{},
		&entity.ProcedureOrder{},
		&entity.Prescription{},
		&entity.PrescriptionMedicine{},
		&entity.Setting{},
		&entity.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testAudit() service.AuditService {
	return service.NewAuditService(testLogger(), repository.NewAuditLogRepository())
}

// fakeSequencer hands out deterministic in-process sequences.
type fakeSequencer struct {
	tokens   map[uuid.UUID]int
	receipts int
	patients int
}

func newFakeSequencer() *fakeSequencer {
	return &fakeSequencer{tokens: make(map[uuid.UUID]int)}
}

func (s *fakeSequencer) NextTokenNumber(ctx context.Context, doctorID uuid.UUID, boundary time.Time) (int, error) {
	s.tokens[doctorID]++
	return s.tokens[doctorID], nil
}

func (s *fakeSequencer) NextReceiptSequence(ctx context.Context, day time.Time) (int, error) {
	s.receipts++
	return s.receipts, nil
}

func (s *fakeSequencer) NextPatientSequence(ctx context.Context, day time.Time) (int, error) {
	s.patients++
	return s.patients, nil
}

// fakeNotifier records every broadcast for assertions.
type broadcastRecord struct {
	Room    string
	Topic   string
	Payload interface{}
}

type fakeNotifier struct {
	events []broadcastRecord
}

func (n *fakeNotifier) Broadcast(ctx context.Context, topic string, payload interface{}) {
	n.events = append(n.events, broadcastRecord{Topic: topic, Payload: payload})
}

func (n *fakeNotifier) BroadcastToRoom(ctx context.Context, room, topic string, payload interface{}) {
	n.events = append(n.events, broadcastRecord{Room: room, Topic: topic, Payload: payload})
}

func (n *fakeNotifier) topicsFor(room string) []string {
	var topics []string
	for _, e := range n.events {
		if e.Room == room {
			topics = append(topics, e.Topic)
		}
	}
	return topics
}

func seedPatient(t *testing.T, db *gorm.DB) *entity.Patient {
	t.Helper()
	patient := &entity.Patient{
		PatientCode: "P-20250310-" + uuid.NewString()[:4],
		Name:        "Jane Smith",
		Age:         34,
		Gender:      entity.GenderFemale,
		Phone:       "555-0100",
	}
	require.NoError(t, db.Create(patient).Error)
	return patient
}

func seedDoctor(t *testing.T, db *gorm.DB, fee float64) *entity.Doctor {
	t.Helper()
	doctor := &entity.Doctor{
		Name:            "Dr. Gregory",
		Specialization:  "General Medicine",
		ConsultationFee: fee,
		RoomNumber:      "101",
	}
	require.NoError(t, db.Create(doctor).Error)
	return doctor
}

func seedVisit(t *testing.T, db *gorm.DB, patient *entity.Patient, doctor *entity.Doctor, token int, emergency bool, visitDate time.Time) *entity.Visit {
	t.Helper()
	visit := &entity.Visit{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		TokenNumber:     token,
		VisitDate:       visitDate,
		Status:          entity.VisitStatusWaiting,
		IsEmergency:     emergency,
		ConsultationFee: doctor.ConsultationFee,
	}
	require.NoError(t, db.Create(visit).Error)
	return visit
}
