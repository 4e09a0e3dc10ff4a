package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// MONTH PERIODS
// =============================================================================

func TestMonthPeriod_ValidKey(t *testing.T) {
	period, err := engine.MonthPeriod("2023-03")
	require.NoError(t, err)

	assert.Equal(t, "2023-03", period.Key)
	assert.True(t, period.Contains(time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2023, time.March, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)))
}

func TestMonthPeriod_MalformedKey_Rejected(t *testing.T) {
	// Malformed period keys must fail before any computation happens.
	for _, key := range []string{"2023-3", "2023-13", "202303", "2023/03", "march", ""} {
		_, err := engine.MonthPeriod(key)
		assert.Error(t, err, "key %q should be rejected", key)
		assert.ErrorIs(t, err, engine.ErrInvalidPeriod, "key %q", key)
		assert.True(t, engine.IsInputValidation(err))

		var detail *engine.InvalidPeriodError
		require.True(t, errors.As(err, &detail))
		assert.Equal(t, key, detail.Key)
	}
}

// =============================================================================
// DAY AND WEEK PERIODS
// =============================================================================

func TestDayPeriod_SingleDay(t *testing.T) {
	period := engine.DayPeriod(time.Date(2023, time.March, 10, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, "2023-03-10", period.Key)
	assert.True(t, period.Contains(time.Date(2023, time.March, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2023, time.March, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2023, time.March, 9, 0, 0, 0, 0, time.UTC)))
}

func TestWeekPeriod_ISOWeek_StartsMonday(t *testing.T) {
	// 2023-03-10 is a Friday; its ISO week starts Monday 2023-03-06.
	period := engine.WeekPeriod(time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "2023-W10", period.Key)
	assert.Equal(t, time.Monday, period.Start.Weekday())
	assert.True(t, period.Contains(time.Date(2023, time.March, 6, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2023, time.March, 12, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2023, time.March, 13, 0, 0, 0, 0, time.UTC)))
}

func TestWeekPeriod_DisjointBuckets(t *testing.T) {
	// Consecutive weeks never share a date.
	week1 := engine.WeekPeriod(time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC))
	week2 := engine.WeekPeriod(time.Date(2023, time.March, 13, 0, 0, 0, 0, time.UTC))

	assert.NotEqual(t, week1.Key, week2.Key)
	boundary := time.Date(2023, time.March, 13, 0, 0, 0, 0, time.UTC)
	assert.False(t, week1.Contains(boundary))
	assert.True(t, week2.Contains(boundary))
}

// =============================================================================
// MONTH WINDOWS
// =============================================================================

func TestWindowEnding_SixMonths(t *testing.T) {
	window, err := engine.WindowEnding("2023-06", 6)
	require.NoError(t, err)

	assert.Equal(t, engine.MonthWindow{"2023-01", "2023-02", "2023-03", "2023-04", "2023-05", "2023-06"}, window)
	assert.Equal(t, "2023-06", window.Latest())
	assert.True(t, window.Contains("2023-03"))
	assert.False(t, window.Contains("2022-12"))
}

func TestWindowEnding_CrossesYearBoundary(t *testing.T) {
	window, err := engine.WindowEnding("2023-02", 4)
	require.NoError(t, err)
	assert.Equal(t, engine.MonthWindow{"2022-11", "2022-12", "2023-01", "2023-02"}, window)
}

func TestWindowEnding_MalformedEnd(t *testing.T) {
	_, err := engine.WindowEnding("2023-6", 6)
	assert.ErrorIs(t, err, engine.ErrInvalidPeriod)
}
