package report

import (
	"context"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/report"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

type GetDashboardStats struct {
	repo domain.Repository
	opts Options
}

func NewGetDashboardStats(repo domain.Repository, opts Options) *GetDashboardStats {
	return &GetDashboardStats{repo: repo, opts: opts.withDefaults()}
}

// Execute compares today with yesterday, both calendar days in the
// configured location.
func (uc *GetDashboardStats) Execute(ctx context.Context) (*domain.Dashboard, error) {
	today := timezone.StartOfDay(uc.opts.Now().In(uc.opts.Location))
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)

	key := "report:dashboard:" + today.Format("2006-01-02")

	return cached(ctx, uc.opts.Cache, uc.opts.CacheTTL, key, func() (*domain.Dashboard, error) {
		cur, err := uc.repo.DaySnapshot(ctx, today, tomorrow)
		if err != nil {
			return nil, err
		}
		prev, err := uc.repo.DaySnapshot(ctx, yesterday, today)
		if err != nil {
			return nil, err
		}

		dash := domain.BuildDashboard(today.Format("2006-01-02"), cur, prev)
		return &dash, nil
	})
}
