package travelservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

const (
	keyPrefix = "visit-scheduler:travel:"

	// DepartureBucket шаг, до которого округляется время отправления в ключе кэша
	DepartureBucket = 15 * time.Minute
)

// CachedEstimator кэширует время в пути в Redis.
// При ошибках Redis кэш отключается и запросы идут напрямую в источник.
type CachedEstimator struct {
	next     Estimator
	client   redis.Cmdable
	ttl      time.Duration
	log      Logger
	disabled atomic.Bool
}

// NewCachedEstimator создает кэширующую обёртку над next
func NewCachedEstimator(next Estimator, client redis.Cmdable, ttl time.Duration, log Logger) *CachedEstimator {
	return &CachedEstimator{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// EstimateTravelMinutes возвращает значение из кэша или запрашивает источник и сохраняет результат.
// Ошибки источника не кэшируются.
func (c *CachedEstimator) EstimateTravelMinutes(ctx context.Context, origin, destination domain.Location, departure time.Time) (int, error) {
	if c.disabled.Load() || !origin.HasCoordinates() || !destination.HasCoordinates() {
		return c.next.EstimateTravelMinutes(ctx, origin, destination, departure)
	}

	key := cacheKey(origin, destination, departure)

	cached, err := c.client.Get(ctx, key).Int()
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, redis.Nil):
		// промах
	case ctx.Err() != nil:
		return 0, ctx.Err()
	default:
		c.disable(err)
	}

	minutes, err := c.next.EstimateTravelMinutes(ctx, origin, destination, departure)
	if err != nil {
		return 0, err
	}

	if !c.disabled.Load() {
		if err := c.client.Set(ctx, key, minutes, c.ttl).Err(); err != nil && ctx.Err() == nil {
			c.disable(err)
		}
	}

	return minutes, nil
}

// Enabled возвращает false после первой ошибки Redis
func (c *CachedEstimator) Enabled() bool {
	return !c.disabled.Load()
}

func (c *CachedEstimator) disable(err error) {
	if c.disabled.CompareAndSwap(false, true) {
		c.log.Error("Travel cache unavailable, falling back to direct lookups: %v", err)
	}
}

// cacheKey строит ключ по координатам и интервалу времени отправления
func cacheKey(origin, destination domain.Location, departure time.Time) string {
	bucket := departure.Truncate(DepartureBucket).Unix()
	return fmt.Sprintf("%s%s:%s:%s", keyPrefix, formatLatLng(origin), formatLatLng(destination), strconv.FormatInt(bucket, 10))
}
