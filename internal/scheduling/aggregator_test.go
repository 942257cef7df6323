package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func catalog() []*domain.Service {
	return []*domain.Service{
		{ID: 1, Name: "Hair Cut (Female)", Category: domain.CategoryHair, DurationMinutes: 30, Price: 350, IsActive: true},
		{ID: 2, Name: "Silver Facial", Category: domain.CategorySkin, DurationMinutes: 45, Price: 1200, IsActive: true},
		{ID: 3, Name: "Retired Package", Category: domain.CategoryOther, DurationMinutes: 60, Price: 999, IsActive: false},
	}
}

func TestAggregate_SumsInRequestOrder(t *testing.T) {
	quote, err := Aggregate([]int64{2, 1}, catalog())
	require.NoError(t, err)

	assert.Equal(t, 75, quote.TotalDurationMinutes)
	assert.Equal(t, 75*time.Minute, quote.Duration())
	assert.Equal(t, int64(1550), quote.TotalPrice)
	assert.Equal(t, []int64{2, 1}, quote.ServiceIDs())
	assert.Empty(t, quote.Missing)
}

func TestAggregate_DuplicatesCountAgain(t *testing.T) {
	quote, err := Aggregate([]int64{1, 1}, catalog())
	require.NoError(t, err)

	assert.Equal(t, 60, quote.TotalDurationMinutes)
	assert.Equal(t, int64(700), quote.TotalPrice)
	assert.Len(t, quote.Services, 2)
}

func TestAggregate_SkipsInactiveAndUnknown(t *testing.T) {
	quote, err := Aggregate([]int64{1, 3, 42}, catalog())
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, quote.ServiceIDs())
	assert.Equal(t, []int64{3, 42}, quote.Missing)
}

func TestAggregate_Errors(t *testing.T) {
	_, err := Aggregate(nil, catalog())
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = Aggregate([]int64{3, 42}, catalog())
	assert.ErrorIs(t, err, ErrNoServices)
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, UniqueIDs([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, UniqueIDs(nil))
}
