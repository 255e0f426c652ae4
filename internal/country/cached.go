package country

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customer-registry/internal/cache"
	"github.com/umalmyha/customer-registry/internal/model"
)

type cachedSource struct {
	source Source
	cache  cache.CountryCache
}

// NewCachedSource wraps source with cache. Cache failures never fail the fetch itself.
func NewCachedSource(source Source, countryCache cache.CountryCache) Source {
	return &cachedSource{
		source: source,
		cache:  countryCache,
	}
}

func (s *cachedSource) Fetch(ctx context.Context, code int16) (*model.Country, error) {
	c, err := s.cache.FindByCode(ctx, code)
	if err != nil {
		logrus.WithField("country", code).Warnf("failed to read country from cache - %v", err)
	}

	if c != nil {
		return c, nil
	}

	c, err = s.source.Fetch(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Cache(ctx, code, c); err != nil {
		logrus.WithField("country", code).Warnf("failed to cache country - %v", err)
	}
	return c, nil
}
