package booking

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func TestActiveInRangeQuery(t *testing.T) {
	from := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	query, args, err := activeInRangeQuery([]int64{3, 5}, from, to, false)
	require.NoError(t, err)

	assert.Contains(t, query, "FROM bookings")
	assert.Contains(t, query, "staff_id IN ($1,$2)")
	assert.Contains(t, query, "status <> $3")
	assert.Contains(t, query, "start_time < $4")
	assert.Contains(t, query, "end_time > $5")
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{int64(3), int64(5), domain.StatusCancelled, to, from}, args)

	lockedQuery, _, err := activeInRangeQuery([]int64{3}, from, to, true)
	require.NoError(t, err)
	assert.Contains(t, lockedQuery, "FOR UPDATE")
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(ErrOverlap))
	assert.True(t, IsConflict(fmt.Errorf("wrap: %w", ErrOverlap)))
	assert.True(t, IsConflict(&pq.Error{Code: "23P01"}))
	assert.True(t, IsConflict(fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})))
	assert.False(t, IsConflict(&pq.Error{Code: "23505"}))
	assert.False(t, IsConflict(errors.New("connection refused")))
	assert.False(t, IsConflict(nil))
}
