package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/truelife/learningapp/internal/pkg/helpers"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := helpers.CalculateOffsetLimit(1, 10)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 10, limit)

	offset, limit = helpers.CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, limit)

	// Out-of-range values fall back to defaults
	offset, limit = helpers.CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, helpers.DefaultPageSize, limit)

	_, limit = helpers.CalculateOffsetLimit(1, helpers.MaxPageSize+1)
	assert.Equal(t, helpers.DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := helpers.NewPaginationInfo(37, 1, 10)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 4, info.TotalPages)
	assert.Equal(t, int64(37), info.TotalItems)

	// Empty result still reports one page
	info = helpers.NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)

	// Requested page beyond the end is clamped
	info = helpers.NewPaginationInfo(10, 9, 10)
	assert.Equal(t, 1, info.CurrentPage)
}
