package cache

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Entity names used as key prefixes.
const (
	KeyRestaurants       = "restaurants"
	KeyRestaurant        = "restaurant"
	KeyRestaurantReviews = "restaurant-reviews"
	KeyAdminStats        = "admin-stats"
	KeyUser              = "user"
)

const keySeparator = ":"

var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurants_cache_hits_total",
		Help: "Cache lookups answered from the store, by entity.",
	}, []string{"entity"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurants_cache_misses_total",
		Help: "Cache lookups that fell through to the database, by entity.",
	}, []string{"entity"})
	cacheErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurants_cache_errors_total",
		Help: "Cache store failures, by operation.",
	}, []string{"op"})
)

// Service is the cache facade used by the domain services. Store failures
// never reach the caller: reads degrade to a miss and writes are dropped.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// GenerateKey returns entity alone, or entity:<json params>. Struct fields are
// encoded in declaration order and map keys sorted, so equal params give equal keys.
func (s *Service) GenerateKey(entity string, params any) string {
	if params == nil {
		return entity
	}
	encoded, err := json.Marshal(params)
	if err != nil {
		log.Printf("[CACHE] cannot encode key params for %s: %v", entity, err)
		return entity
	}
	return entity + keySeparator + string(encoded)
}

// Get decodes the cached value for key into dest and reports whether it was a hit.
func (s *Service) Get(ctx context.Context, key string, dest any) bool {
	entity := entityOf(key)

	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		cacheErrorsTotal.WithLabelValues("get").Inc()
		log.Printf("[CACHE] get %s: %v", key, err)
		found = false
	}
	if !found {
		cacheMissesTotal.WithLabelValues(entity).Inc()
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		cacheErrorsTotal.WithLabelValues("decode").Inc()
		log.Printf("[CACHE] decode %s: %v", key, err)
		cacheMissesTotal.WithLabelValues(entity).Inc()
		return false
	}

	cacheHitsTotal.WithLabelValues(entity).Inc()
	return true
}

func (s *Service) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		cacheErrorsTotal.WithLabelValues("encode").Inc()
		log.Printf("[CACHE] encode %s: %v", key, err)
		return
	}
	if err := s.store.Set(ctx, key, raw, ttl); err != nil {
		cacheErrorsTotal.WithLabelValues("set").Inc()
		log.Printf("[CACHE] set %s: %v", key, err)
	}
}

func (s *Service) Delete(ctx context.Context, keys ...string) {
	if err := s.store.Delete(ctx, keys...); err != nil {
		cacheErrorsTotal.WithLabelValues("delete").Inc()
		log.Printf("[CACHE] delete %v: %v", keys, err)
	}
}

// InvalidateEntity drops the detail key of one entity instance.
func (s *Service) InvalidateEntity(ctx context.Context, entity string, id uint) {
	s.Delete(ctx, s.GenerateKey(entity, IDParams{ID: id}))
}

// InvalidateEntityList drops the bare list key and every parameterised variant.
func (s *Service) InvalidateEntityList(ctx context.Context, entity string) {
	s.Delete(ctx, entity)
	if err := s.store.DeleteByPrefix(ctx, entity+keySeparator); err != nil {
		cacheErrorsTotal.WithLabelValues("delete_prefix").Inc()
		log.Printf("[CACHE] delete prefix %s: %v", entity, err)
	}
}

// IDParams is the parameter shape of detail keys.
type IDParams struct {
	ID uint `json:"id"`
}

func entityOf(key string) string {
	entity, _, _ := strings.Cut(key, keySeparator)
	return entity
}
