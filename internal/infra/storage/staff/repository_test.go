package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

func TestListQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		query, args, err := listQuery(domain.StaffFilter{})
		require.NoError(t, err)

		assert.Contains(t, query, "FROM staff s JOIN users u ON u.id = s.user_id")
		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("any of services", func(t *testing.T) {
		query, args, err := listQuery(domain.StaffFilter{ServiceIDs: []int64{1, 2}, OnlyAvailable: true})
		require.NoError(t, err)

		assert.Contains(t, query, "s.is_available = $1")
		assert.Contains(t, query, "s.service_ids && $2")
		assert.Len(t, args, 2)
	})

	t.Run("all services for one staff", func(t *testing.T) {
		query, args, err := listQuery(domain.StaffFilter{
			ServiceIDs: []int64{1, 2},
			StaffID:    ptr.Ptr(int64(7)),
			MatchAll:   true,
		})
		require.NoError(t, err)

		assert.Contains(t, query, "s.id = $1")
		assert.Contains(t, query, "s.service_ids @> $2")
		assert.Equal(t, int64(7), args[0])
	})
}
