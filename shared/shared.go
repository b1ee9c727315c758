package shared

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"gostitut/shared/cache"
	"gostitut/shared/dto"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// BuildCacheKey joins a cache prefix with its discriminating parts.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a cache key from pagination parameters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams) string {
	return fmt.Sprintf("%s:%d:%d:%s:%s", prefix, params.Page, params.Limit, params.SortBy, params.SortDir)
}

// InvalidateCaches drops every cache entry under the given prefix. Failures
// are logged and swallowed: a stale projection is repaired on the next read.
func InvalidateCaches(ctx context.Context, store cache.RedisCache, prefix string) {
	if err := store.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
	}
}
