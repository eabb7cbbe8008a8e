package postgres

import (
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildListingWhereDefault(t *testing.T) {
	t.Parallel()

	where, args := buildListingWhere(store.ListingFilter{})

	assert.Equal(t, " WHERE is_active = TRUE", where)
	assert.Empty(t, args)
}

func TestBuildListingWhereAllSentinel(t *testing.T) {
	t.Parallel()

	// "all" means no constraint for category and location.
	where, args := buildListingWhere(store.ListingFilter{
		Category: store.FilterAll,
		Location: store.FilterAll,
	})

	assert.Equal(t, " WHERE is_active = TRUE", where)
	assert.Empty(t, args)
}

func TestBuildListingWhereConjunction(t *testing.T) {
	t.Parallel()

	where, args := buildListingWhere(store.ListingFilter{
		Category: "mobiles",
		Location: "mumbai",
		Search:   "iphone",
		MinPrice: floatPtr(100),
		MaxPrice: floatPtr(50000),
	})

	assert.Equal(t,
		" WHERE is_active = TRUE AND category = $1 AND location = $2"+
			" AND (title ILIKE $3 OR description ILIKE $3)"+
			" AND price >= $4 AND price <= $5",
		where)
	require.Len(t, args, 5)
	assert.Equal(t, "mobiles", args[0])
	assert.Equal(t, "mumbai", args[1])
	assert.Equal(t, "%iphone%", args[2])
	assert.Equal(t, float64(100), args[3])
	assert.Equal(t, float64(50000), args[4])
}

func TestBuildListingWhereSingleBound(t *testing.T) {
	t.Parallel()

	where, args := buildListingWhere(store.ListingFilter{MinPrice: floatPtr(100)})

	assert.Equal(t, " WHERE is_active = TRUE AND price >= $1", where)
	require.Len(t, args, 1)
}

func TestOrderClause(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sort string
		want string
	}{
		// Ties always break by ascending id, which is insertion order.
		{store.SortNewest, " ORDER BY created_at DESC, id ASC"},
		{store.SortOldest, " ORDER BY created_at ASC, id ASC"},
		{store.SortPriceLow, " ORDER BY price ASC, id ASC"},
		{store.SortPriceHigh, " ORDER BY price DESC, id ASC"},
		// Unrecognized sorts keep only the stable tie-break.
		{"alphabetical", " ORDER BY id ASC"},
		{"", " ORDER BY id ASC"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, orderClause(tc.sort), "sort %q", tc.sort)
	}
}
