package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Pagination{}.Normalize(20, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)

	p = Pagination{Page: -3, Limit: 500}.Normalize(20, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)

	p = Pagination{Page: 4, Limit: 25}.Normalize(20, 100)
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 75, p.Offset())
}

func TestBuildPageInfo(t *testing.T) {
	info := BuildPageInfo(Pagination{Page: 2, Limit: 20}, 41)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, int64(41), info.Total)
	assert.Equal(t, 3, info.TotalPages)

	info = BuildPageInfo(Pagination{Page: 1, Limit: 20}, 0)
	assert.Equal(t, 0, info.TotalPages)
}
