package service

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"sort"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/ports"
)

// AdminService reads the aggregate statistics under /admin/stats.
type AdminService struct {
	api ports.Requester
}

func NewAdminService(api ports.Requester) *AdminService {
	return &AdminService{api: api}
}

func (s *AdminService) Global(ctx context.Context) (*domain.GlobalStats, error) {
	var out domain.GlobalStats
	if err := s.api.Do(ctx, http.MethodGet, "/admin/stats/globales", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Period covers [from, to], both YYYY-MM-DD.
func (s *AdminService) Period(ctx context.Context, from, to string) (*domain.PeriodStats, error) {
	q := url.Values{}
	q.Set("debut", from)
	q.Set("fin", to)
	var out domain.PeriodStats
	if err := s.api.Do(ctx, http.MethodGet, "/admin/stats/periode?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Doctors returns the per-doctor breakdown as served; its shape is not fixed.
func (s *AdminService) Doctors(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	if err := s.api.Do(ctx, http.MethodGet, "/admin/stats/medecins", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AdminService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := s.api.Do(ctx, http.MethodGet, "/admin/stats/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) RecentActivity(ctx context.Context) (*domain.RecentActivity, error) {
	var out domain.RecentActivity
	if err := s.api.Do(ctx, http.MethodGet, "/admin/stats/activite-recente", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalculateRatios expresses the cancelled, completed and confirmed counts as
// rounded percentages of the total. A zero total yields zero ratios.
func CalculateRatios(stats domain.GlobalStats) domain.Ratios {
	total := stats.TotalAppointments
	if total == 0 {
		return domain.Ratios{}
	}
	pct := func(n int64) int {
		return int(math.Round(float64(n) / float64(total) * 100))
	}
	return domain.Ratios{
		CancellationRate: pct(stats.CancelledAppointments),
		CompletionRate:   pct(stats.CompletedAppointments),
		ConfirmationRate: pct(stats.ConfirmedAppointments),
	}
}

// FormatEvolution turns the monthly history into chart points, abbreviating
// each month to its first three letters. Points are ordered by month key.
func FormatEvolution(history map[string]int64) []domain.MonthlyPoint {
	keys := make([]string, 0, len(history))
	for k := range history {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]domain.MonthlyPoint, 0, len(keys))
	for _, k := range keys {
		month := []rune(k)
		if len(month) > 3 {
			month = month[:3]
		}
		points = append(points, domain.MonthlyPoint{Month: string(month), Appointments: history[k]})
	}
	return points
}
