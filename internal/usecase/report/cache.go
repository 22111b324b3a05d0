package report

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/report"
	"github.com/BruksfildServices01/salon-manager/internal/metrics"
)

// cached serves key from the cache and otherwise computes and stores it.
// Cache failures never fail the report.
func cached[T any](
	ctx context.Context,
	cache domain.Cache,
	ttl time.Duration,
	key string,
	compute func() (T, error),
) (T, error) {

	var out T
	hit, err := cache.Get(ctx, key, &out)
	switch {
	case err != nil:
		metrics.ReportCacheTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("key", key).Msg("report cache read failed")
	case hit:
		metrics.ReportCacheTotal.WithLabelValues("hit").Inc()
		return out, nil
	default:
		metrics.ReportCacheTotal.WithLabelValues("miss").Inc()
	}

	out, err = compute()
	if err != nil {
		return out, err
	}

	if err := cache.Set(ctx, key, out, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
	return out, nil
}
