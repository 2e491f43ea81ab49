package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/domain/repository"
	"clinic-desk-backend/internal/service"
	"clinic-desk-backend/pkg/money"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReportUsecase interface {
	// DailyVisits summarizes one calendar day of visits. A zero date
	// means today.
	DailyVisits(ctx context.Context, date time.Time) (*dto.DailyVisitsReport, error)
	BillingSummary(ctx context.Context, from, to time.Time) (*dto.BillingSummaryReport, error)
	// QueueStats summarizes the current reset-day per doctor, including
	// the average completed wait.
	QueueStats(ctx context.Context) (*dto.QueueStatsReport, error)
	PatientStats(ctx context.Context) (*dto.PatientStatsReport, error)
}

type reportUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	visitRepo      repository.VisitRepository
	invoiceRepo    repository.InvoiceRepository
	patientRepo    repository.PatientRepository
	settingUsecase SettingUsecase
	now            func() time.Time
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	visitRepo repository.VisitRepository,
	invoiceRepo repository.InvoiceRepository,
	patientRepo repository.PatientRepository,
	settingUsecase SettingUsecase,
) ReportUsecase {
	return &reportUsecase{
		db:             db,
		log:            log,
		visitRepo:      visitRepo,
		invoiceRepo:    invoiceRepo,
		patientRepo:    patientRepo,
		settingUsecase: settingUsecase,
		now:            time.Now,
	}
}

func (u *reportUsecase) DailyVisits(ctx context.Context, date time.Time) (*dto.DailyVisitsReport, error) {
	if date.IsZero() {
		date = u.now()
	}
	from := service.StartOfDay(date)
	to := from.AddDate(0, 0, 1)

	visits, err := u.visitRepo.FindBetween(u.db.WithContext(ctx), from, to)
	if err != nil {
		u.log.Warnf("Failed to load visits for %s: %+v", from.Format("2006-01-02"), err)
		return nil, err
	}

	byStatus := map[string]int{}
	type doctorCount struct {
		name  string
		count int
	}
	byDoctor := map[uuid.UUID]*doctorCount{}
	for _, visit := range visits {
		byStatus[string(visit.Status)]++
		entry, ok := byDoctor[visit.DoctorID]
		if !ok {
			entry = &doctorCount{name: visit.Doctor.Name}
			byDoctor[visit.DoctorID] = entry
		}
		entry.count++
	}

	doctorCounts := make([]dto.DoctorVisitCount, 0, len(byDoctor))
	for doctorID, entry := range byDoctor {
		doctorCounts = append(doctorCounts, dto.DoctorVisitCount{
			DoctorID:   doctorID,
			DoctorName: entry.name,
			Count:      entry.count,
		})
	}
	sort.Slice(doctorCounts, func(i, j int) bool {
		return doctorCounts[i].Count > doctorCounts[j].Count
	})

	return &dto.DailyVisitsReport{
		Date:     from.Format("2006-01-02"),
		Total:    len(visits),
		ByStatus: byStatus,
		ByDoctor: doctorCounts,
	}, nil
}

func (u *reportUsecase) BillingSummary(ctx context.Context, from, to time.Time) (*dto.BillingSummaryReport, error) {
	payments, err := u.invoiceRepo.FindPaymentsBetween(u.db.WithContext(ctx), from, to)
	if err != nil {
		u.log.Warnf("Failed to load payments between %s and %s: %+v", from, to, err)
		return nil, err
	}

	total := 0.0
	byMethod := map[string]float64{}
	for _, payment := range payments {
		total += payment.Amount
		byMethod[string(payment.Method)] = money.Round(byMethod[string(payment.Method)] + payment.Amount)
	}

	return &dto.BillingSummaryReport{
		From:        from,
		To:          to,
		TotalAmount: money.Round(total),
		ByMethod:    byMethod,
	}, nil
}

func (u *reportUsecase) QueueStats(ctx context.Context) (*dto.QueueStatsReport, error) {
	settings, err := u.settingUsecase.Get(ctx)
	if err != nil {
		return nil, err
	}
	boundary := service.ResetBoundary(settings.TokenResetTime, u.now())

	visits, err := u.visitRepo.FindSince(u.db.WithContext(ctx), boundary)
	if err != nil {
		u.log.Warnf("Failed to load visits since %s: %+v", boundary, err)
		return nil, err
	}

	type doctorStats struct {
		name           string
		waiting        int
		inConsultation int
		completed      int
		waitedMinutes  float64
	}
	byDoctor := map[uuid.UUID]*doctorStats{}
	for _, visit := range visits {
		stats, ok := byDoctor[visit.DoctorID]
		if !ok {
			stats = &doctorStats{name: visit.Doctor.Name}
			byDoctor[visit.DoctorID] = stats
		}
		switch visit.Status {
		case entity.VisitStatusWaiting:
			stats.waiting++
		case entity.VisitStatusInConsultation:
			stats.inConsultation++
		case entity.VisitStatusCompleted:
			stats.completed++
			if visit.CompletedAt != nil {
				stats.waitedMinutes += math.Max(0, visit.CompletedAt.Sub(visit.VisitDate).Minutes())
			}
		}
	}

	results := make([]dto.DoctorQueueStats, 0, len(byDoctor))
	for doctorID, stats := range byDoctor {
		avgWait := 0.0
		if stats.completed > 0 {
			avgWait = math.Round(stats.waitedMinutes/float64(stats.completed)*100) / 100
		}
		results = append(results, dto.DoctorQueueStats{
			DoctorID:       doctorID,
			DoctorName:     stats.name,
			Waiting:        stats.waiting,
			InConsultation: stats.inConsultation,
			Completed:      stats.completed,
			AvgWaitMinutes: avgWait,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].DoctorName < results[j].DoctorName
	})

	return &dto.QueueStatsReport{
		Date:     service.StartOfDay(u.now()).Format("2006-01-02"),
		ByDoctor: results,
	}, nil
}

func (u *reportUsecase) PatientStats(ctx context.Context) (*dto.PatientStatsReport, error) {
	total, err := u.patientRepo.Count(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	newToday, err := u.patientRepo.CountCreatedSince(u.db.WithContext(ctx), service.StartOfDay(u.now()))
	if err != nil {
		u.log.Warnf("Failed to count today's patients: %+v", err)
		return nil, err
	}

	return &dto.PatientStatsReport{
		TotalPatients: total,
		NewToday:      newToday,
	}, nil
}
