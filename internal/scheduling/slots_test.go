package scheduling

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var salonHours = domain.BusinessHours{Open: "10:00", Close: "22:00"}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(salonHours, 30*time.Minute)
	require.NoError(t, err)
	return g
}

func testDay() time.Time {
	return time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
}

func at(h, m int) time.Time {
	return time.Date(2025, 6, 12, h, m, 0, 0, time.UTC)
}

func TestGenerator_Candidates_SixtyMinutes(t *testing.T) {
	g := newTestGenerator(t)

	slots := slices.Collect(g.Candidates(testDay(), 60*time.Minute))

	// 10:00, 10:30, ..., 21:00
	require.Len(t, slots, 23)
	assert.Equal(t, domain.Interval{Start: at(10, 0), End: at(11, 0)}, slots[0])
	assert.Equal(t, domain.Interval{Start: at(21, 0), End: at(22, 0)}, slots[len(slots)-1])
}

func TestGenerator_Candidates_EndNeverPastClose(t *testing.T) {
	g := newTestGenerator(t)
	closeAt := at(22, 0)

	for _, minutes := range []int{15, 30, 45, 75, 90, 240, 719, 720} {
		d := time.Duration(minutes) * time.Minute
		count := 0
		for slot := range g.Candidates(testDay(), d) {
			count++
			assert.False(t, slot.End.After(closeAt), "duration %d: slot %v ends after close", minutes, slot)
			assert.Equal(t, d, slot.Duration())
		}
		assert.Positive(t, count, "duration %d", minutes)
	}
}

func TestGenerator_Candidates_WholeDay(t *testing.T) {
	g := newTestGenerator(t)

	slots := slices.Collect(g.Candidates(testDay(), 12*time.Hour))

	require.Len(t, slots, 1)
	assert.Equal(t, at(10, 0), slots[0].Start)
	assert.Equal(t, at(22, 0), slots[0].End)
}

func TestGenerator_Candidates_Empty(t *testing.T) {
	g := newTestGenerator(t)

	assert.Empty(t, slices.Collect(g.Candidates(testDay(), 12*time.Hour+time.Minute)))
	assert.Empty(t, slices.Collect(g.Candidates(testDay(), 0)))
	assert.Empty(t, slices.Collect(g.Candidates(testDay(), -time.Hour)))
}

func TestGenerator_Candidates_Restartable(t *testing.T) {
	g := newTestGenerator(t)
	seq := g.Candidates(testDay(), 45*time.Minute)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Equal(t, first, second)
}

func TestGenerator_Candidates_Lazy(t *testing.T) {
	g := newTestGenerator(t)

	var taken []domain.Interval
	for slot := range g.Candidates(testDay(), 30*time.Minute) {
		taken = append(taken, slot)
		if len(taken) == 3 {
			break
		}
	}

	require.Len(t, taken, 3)
	assert.Equal(t, at(11, 0), taken[2].Start)
}

func TestNewGenerator_Validation(t *testing.T) {
	_, err := NewGenerator(salonHours, 0)
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = NewGenerator(domain.BusinessHours{Open: "22:00", Close: "10:00"}, 30*time.Minute)
	assert.Error(t, err)

	_, err = NewGenerator(domain.BusinessHours{Open: "10", Close: "22:00"}, 30*time.Minute)
	assert.Error(t, err)
}

func TestGenerator_Fits(t *testing.T) {
	g := newTestGenerator(t)

	assert.True(t, g.Fits(domain.Interval{Start: at(10, 0), End: at(11, 0)}))
	assert.True(t, g.Fits(domain.Interval{Start: at(21, 0), End: at(22, 0)}))
	assert.False(t, g.Fits(domain.Interval{Start: at(21, 30), End: at(22, 30)}))
	assert.False(t, g.Fits(domain.Interval{Start: at(9, 30), End: at(10, 30)}))
}
