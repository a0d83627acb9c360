package filter_test

import (
	"testing"

	"github.com/haiquanvn/aquamon/internal/filter"
	"github.com/haiquanvn/aquamon/internal/model"
	"github.com/stretchr/testify/assert"
)

func userIDs(users []model.User) []int64 {
	var ids []int64
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

// Loading page 2 after page 1 must not duplicate any id present in page 1,
// even when the server returns overlapping rows.
func TestPagerMergeDeduplicatesOverlappingPages(t *testing.T) {
	pager := filter.NewPager(3, func(u model.User) int64 { return u.ID })

	pager.Merge([]model.User{{ID: 1}, {ID: 2}, {ID: 3}})
	assert.Equal(t, 3, pager.Offset())
	assert.True(t, pager.HasMore())

	// the server repeats the boundary row
	pager.Merge([]model.User{{ID: 3}, {ID: 4}, {ID: 5}})
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, userIDs(pager.Items()))
	assert.Equal(t, 6, pager.Offset())
}

func TestPagerShortPageEndsPaging(t *testing.T) {
	pager := filter.NewPager(3, func(u model.User) int64 { return u.ID })

	pager.Merge([]model.User{{ID: 1}, {ID: 2}, {ID: 3}})
	assert.True(t, pager.HasMore())

	pager.Merge([]model.User{{ID: 4}})
	assert.False(t, pager.HasMore())
	assert.Len(t, pager.Items(), 4)
}

func TestPagerResetStartsOver(t *testing.T) {
	pager := filter.NewPager(2, func(u model.User) int64 { return u.ID })
	pager.Merge([]model.User{{ID: 1}, {ID: 2}})
	pager.Merge([]model.User{})

	pager.Reset()
	assert.Zero(t, pager.Offset())
	assert.True(t, pager.HasMore())
	assert.Empty(t, pager.Items())

	// after a refresh the same ids may legitimately come back
	pager.Merge([]model.User{{ID: 1}, {ID: 2}})
	assert.Equal(t, []int64{1, 2}, userIDs(pager.Items()))
}

func TestPagerEmptyFirstPage(t *testing.T) {
	pager := filter.NewPager(10, func(u model.User) int64 { return u.ID })
	pager.Merge(nil)
	assert.False(t, pager.HasMore())
	assert.Empty(t, pager.Items())
}
