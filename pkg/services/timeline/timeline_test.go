package timeline

import (
	"testing"
	"time"

	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_SortsAndSkipsBadTimes(t *testing.T) {
	readings := []domain.Reading{
		{Date: day(3), Time: "07:00", Systolic: 130},
		{Date: day(1), Time: "21:00", Systolic: 120},
		{Date: day(1), Time: "99:99", Systolic: 999},
		{Date: day(1), Time: "7:30", Systolic: 110},
	}

	entries := Build(readings)

	require.Len(t, entries, 3)
	assert.Equal(t, time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC), entries[0].At)
	assert.Equal(t, 110, entries[0].Reading.Systolic)
	assert.Equal(t, 120, entries[1].Reading.Systolic)
	assert.Equal(t, 130, entries[2].Reading.Systolic)
}

func TestBuild_StableForEqualInstants(t *testing.T) {
	readings := []domain.Reading{
		{Date: day(2), Time: "08:00", Systolic: 121},
		{Date: day(2), Time: "08:00", Systolic: 122},
	}

	entries := Build(readings)

	require.Len(t, entries, 2)
	assert.Equal(t, 121, entries[0].Reading.Systolic)
	assert.Equal(t, 122, entries[1].Reading.Systolic)
}

func TestBuild_RemovesDuplicates(t *testing.T) {
	r := domain.Reading{Date: day(4), Time: "06:45", Systolic: 125, Diastolic: 82, HeartRate: 64}
	cuff := r
	cuff.ReadingType = domain.ReadingTypeCuff

	entries := Build([]domain.Reading{r, {Date: day(4), Time: "06:45", Systolic: 126}, cuff})

	require.Len(t, entries, 2)
	assert.Equal(t, 125, entries[0].Reading.Systolic)
	assert.Equal(t, 126, entries[1].Reading.Systolic)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}
