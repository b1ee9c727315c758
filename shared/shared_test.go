package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gostitut/shared"
	"gostitut/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "exact pages", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "empty result", total: 0, limit: 10, want: 1},
		{name: "zero limit", total: 5, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "limiter:1.2.3.4:agent", shared.BuildCacheKey("limiter", "1.2.3.4", "agent"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	key := shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{
		Page:    2,
		Limit:   10,
		SortBy:  "number",
		SortDir: "ASC",
	})

	assert.Equal(t, "room:gets:2:10:number:ASC", key)
}
