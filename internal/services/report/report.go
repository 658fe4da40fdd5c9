// Package services содержит бизнес-логику построения финансовых отчётов и кеширования.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/revenue-aggregator/internal/finance"
	"github.com/magabrotheeeer/revenue-aggregator/internal/lib/month"
	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// Repository определяет методы чтения записей из хранилища.
type Repository interface {
	// Snapshot возвращает согласованный снимок всех наборов записей.
	// Если customerID задан, движения и продажи ограничиваются клиентом.
	Snapshot(ctx context.Context, customerID uuid.NullUUID) (*models.Snapshot, error)
}

// Cache описывает методы для кэширования отчётов.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
	// InvalidatePrefix удаляет все значения с данным префиксом ключа.
	InvalidatePrefix(prefix string) error
}

// reportsPrefix — общий префикс ключей кэша отчётов. Любое изменение
// записей сбрасывает все ключи с этим префиксом.
const reportsPrefix = "reports:"

// ReportService реализует построение отчётов поверх снимка записей,
// включая кеширование готовых результатов.
type ReportService struct {
	repo          Repository
	cache         Cache
	log           *slog.Logger
	horizonMonths int
}

// NewReportService создает новый экземпляр ReportService.
func NewReportService(repo Repository, cache Cache, log *slog.Logger, horizonMonths int) *ReportService {
	if horizonMonths <= 0 || horizonMonths > finance.DefaultHorizonMonths {
		horizonMonths = finance.DefaultHorizonMonths
	}
	return &ReportService{
		repo:          repo,
		cache:         cache,
		log:           log,
		horizonMonths: horizonMonths,
	}
}

// parseWindow конвертирует строки дат запроса в окно агрегации.
// Конец окна расширяется до конца дня: границы окна включительны,
// а платежи хранятся с точным временем.
func parseWindow(startDate, endDate string) (models.Window, error) {
	start, err := time.Parse("02-01-2006", startDate)
	if err != nil {
		return models.Window{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("02-01-2006", endDate)
	if err != nil {
		return models.Window{}, fmt.Errorf("invalid end date: %w", err)
	}
	return models.Window{
		Start: start.UTC(),
		End:   endOfDay(end.UTC()),
	}, nil
}

func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// buildPeriodReport собирает отчёт за окно из одного снимка записей.
func buildPeriodReport(snap *models.Snapshot, w models.Window) *models.PeriodReport {
	shadow := finance.BuildShadowSet(snap.Payments)
	summary := finance.Aggregate(snap.Entries, snap.Payments, shadow, w)
	return &models.PeriodReport{
		StartDate:       w.Start,
		EndDate:         w.End,
		PaidIncome:      summary.PaidIncome,
		PendingIncome:   summary.PendingIncome,
		PaidExpenses:    summary.PaidExpenses,
		PendingExpenses: summary.PendingExpenses,
		Monthly:         summary.Monthly,
		BreakEven:       finance.BreakEven(summary.PaidIncome, summary.PaidExpenses),
	}
}

// PeriodReport строит финансовый срез за произвольный период.
func (s *ReportService) PeriodReport(ctx context.Context, req models.DummyWindow) (*models.PeriodReport, error) {
	w, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var result *models.PeriodReport
	cacheKey := fmt.Sprintf("%ssummary:%s:%s", reportsPrefix, req.StartDate, req.EndDate)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	snap, err := s.repo.Snapshot(ctx, uuid.NullUUID{})
	if err != nil {
		return nil, err
	}
	result = buildPeriodReport(snap, w)

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache report", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// DashboardSummary строит данные дашборда: отчёт за текущий месяц
// и сумму ещё не закрытых обязательств по подпискам.
func (s *ReportService) DashboardSummary(ctx context.Context, now time.Time) (*models.DashboardSummary, error) {
	var result *models.DashboardSummary
	cacheKey := fmt.Sprintf("%sdashboard:%s", reportsPrefix, month.Key(now))
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	snap, err := s.repo.Snapshot(ctx, uuid.NullUUID{})
	if err != nil {
		return nil, err
	}

	w := models.Window{
		Start: month.StartOf(now),
		End:   endOfDay(month.EndOf(now)),
	}
	result = &models.DashboardSummary{
		AsOf:               now,
		Period:             buildPeriodReport(snap, w),
		PendingObligations: finance.ProjectPending(snap.Subscriptions, snap.Payments, now, s.horizonMonths),
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache report", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Projection строит проекцию обязательств по подпискам на горизонт вперёд.
// Нулевой horizonMonths означает горизонт из конфигурации сервиса.
func (s *ReportService) Projection(ctx context.Context, asOf time.Time, horizonMonths int) (*models.ProjectionReport, error) {
	if horizonMonths <= 0 || horizonMonths > finance.DefaultHorizonMonths {
		horizonMonths = s.horizonMonths
	}

	var result *models.ProjectionReport
	cacheKey := fmt.Sprintf("%sprojection:%s:%d", reportsPrefix, month.Key(asOf), horizonMonths)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	snap, err := s.repo.Snapshot(ctx, uuid.NullUUID{})
	if err != nil {
		return nil, err
	}

	obligations := finance.ProjectObligations(snap.Subscriptions, snap.Payments, asOf, horizonMonths)
	result = &models.ProjectionReport{
		AsOf:          asOf,
		HorizonMonths: horizonMonths,
		PendingTotal:  finance.PendingObligationsTotal(obligations),
		Obligations:   obligations,
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache report", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// ExportReport собирает полезную нагрузку для внешнего генератора PDF.
// Отчёт за период и проекция строятся из одного снимка, поэтому числа
// в документе совпадают с дашбордом на тот же момент. Не кешируется:
// выгрузка одноразовая.
func (s *ReportService) ExportReport(ctx context.Context, req models.DummyWindow, now time.Time) (*models.ExportReport, error) {
	w, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	snap, err := s.repo.Snapshot(ctx, uuid.NullUUID{})
	if err != nil {
		return nil, err
	}

	obligations := finance.ProjectObligations(snap.Subscriptions, snap.Payments, now, s.horizonMonths)
	return &models.ExportReport{
		GeneratedAt: now,
		Period:      buildPeriodReport(snap, w),
		Projection: &models.ProjectionReport{
			AsOf:          now,
			HorizonMonths: s.horizonMonths,
			PendingTotal:  finance.PendingObligationsTotal(obligations),
			Obligations:   obligations,
		},
	}, nil
}

// CustomerProfile строит финансовый профиль клиента за период.
func (s *ReportService) CustomerProfile(ctx context.Context, req models.DummyCustomerFilter) (*models.CustomerProfile, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}
	w, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var result *models.CustomerProfile
	cacheKey := fmt.Sprintf("%scustomer:%s:%s:%s", reportsPrefix, req.CustomerID, req.StartDate, req.EndDate)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	// Движения и продажи снимка ограничены клиентом, подписки и платежи
	// читаются целиком: профиль строит множество теней по всем платежам
	snap, err := s.repo.Snapshot(ctx, uuid.NullUUID{UUID: customerID, Valid: true})
	if err != nil {
		return nil, err
	}

	profile := finance.BuildCustomerProfile(customerID, snap.Entries, snap.Sales, snap.Subscriptions, snap.Payments, w)
	result = &profile

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache report", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// InvalidateReports сбрасывает все закэшированные отчёты. Вызывается
// потребителем событий изменения записей.
func (s *ReportService) InvalidateReports() error {
	if err := s.cache.InvalidatePrefix(reportsPrefix); err != nil {
		return fmt.Errorf("services.InvalidateReports: %w", err)
	}
	s.log.Info("invalidated cached reports")
	return nil
}
