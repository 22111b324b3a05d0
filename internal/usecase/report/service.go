package report

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/report"
)

// Options are shared by all report use cases.
type Options struct {
	Location *time.Location
	Cache    domain.Cache
	CacheTTL time.Duration
	Now      func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Cache == nil {
		o.Cache = domain.NopCache{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// ======================================================
// MONTHLY REVENUE
// ======================================================

type GetMonthlyRevenue struct {
	repo domain.Repository
	opts Options
}

func NewGetMonthlyRevenue(repo domain.Repository, opts Options) *GetMonthlyRevenue {
	return &GetMonthlyRevenue{repo: repo, opts: opts.withDefaults()}
}

func (uc *GetMonthlyRevenue) Execute(
	ctx context.Context,
	f domain.Filter,
) ([]domain.MonthlyRevenue, error) {

	q, err := f.Resolve(uc.opts.Now(), uc.opts.Location)
	if err != nil {
		return nil, err
	}

	return cached(ctx, uc.opts.Cache, uc.opts.CacheTTL, q.CacheKey("monthly"), func() ([]domain.MonthlyRevenue, error) {
		rows, err := uc.repo.ListRevenueBookings(ctx, q)
		if err != nil {
			return nil, err
		}
		return domain.AggregateMonthly(rows, uc.opts.Location), nil
	})
}

// ======================================================
// REVENUE BY SERVICE
// ======================================================

type GetRevenueByService struct {
	repo domain.Repository
	opts Options
}

func NewGetRevenueByService(repo domain.Repository, opts Options) *GetRevenueByService {
	return &GetRevenueByService{repo: repo, opts: opts.withDefaults()}
}

func (uc *GetRevenueByService) Execute(
	ctx context.Context,
	f domain.Filter,
) ([]domain.ServiceRevenue, error) {

	q, err := f.Resolve(uc.opts.Now(), uc.opts.Location)
	if err != nil {
		return nil, err
	}

	return cached(ctx, uc.opts.Cache, uc.opts.CacheTTL, q.CacheKey("service"), func() ([]domain.ServiceRevenue, error) {
		lines, err := uc.repo.ListRevenueServiceLines(ctx, q)
		if err != nil {
			return nil, err
		}
		return domain.AggregateByService(lines), nil
	})
}
