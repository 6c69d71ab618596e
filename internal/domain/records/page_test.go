package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{name: "defaults", in: PageRequest{}, want: PageRequest{Page: 1, Limit: 20}},
		{name: "clamped", in: PageRequest{Page: 2, Limit: 500}, want: PageRequest{Page: 2, Limit: 100}},
		{name: "negative", in: PageRequest{Page: -4, Limit: -1}, want: PageRequest{Page: 1, Limit: 20}},
		{name: "kept", in: PageRequest{Page: 5, Limit: 50}, want: PageRequest{Page: 5, Limit: 50}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 100, PageRequest{Page: 2, Limit: 1000}.Offset())
}

func TestProjectPagesArithmetic(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int64
	}{
		{total: 0, limit: 20, pages: 0},
		{total: 1, limit: 20, pages: 1},
		{total: 20, limit: 20, pages: 1},
		{total: 21, limit: 20, pages: 2},
		{total: 250, limit: 100, pages: 3},
	}

	for _, tc := range cases {
		page := Project(EntityCompany, nil, tc.total, PageRequest{Page: 1, Limit: tc.limit})
		assert.Equal(t, tc.pages, page.Pagination.Pages, "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestProjectEmptyDataIsNotNil(t *testing.T) {
	page := Project(EntityParcel, nil, 5, PageRequest{Page: 9, Limit: 20})

	assert.NotNil(t, page.Data)
	assert.Len(t, page.Data, 0)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, 9, page.Pagination.Page)
	assert.Equal(t, Columns(EntityParcel), page.Columns)
}
