package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/UnknownOlympus/agora/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(value int) []int {
	out := make([]int, 24)
	for i := range out {
		out[i] = value
	}
	return out
}

func TestPopularTimes_UnmarshalKeepsOrder(t *testing.T) {
	var pt models.PopularTimes
	err := json.Unmarshal([]byte(`{"3":[1,2],"0":[5],"6":[]}`), &pt)

	require.NoError(t, err)
	require.Len(t, pt, 3)
	assert.Equal(t, "3", pt[0].Day)
	assert.Equal(t, "0", pt[1].Day)
	assert.Equal(t, "6", pt[2].Day)
	assert.Equal(t, []int{1, 2}, pt[0].Hours)
}

func TestPopularTimes_UnmarshalNullAndInvalid(t *testing.T) {
	t.Run("null is empty", func(t *testing.T) {
		pt := models.PopularTimes{{Day: "0"}}
		require.NoError(t, json.Unmarshal([]byte(`null`), &pt))
		assert.Empty(t, pt)
	})

	t.Run("array is rejected", func(t *testing.T) {
		var pt models.PopularTimes
		err := json.Unmarshal([]byte(`[1,2,3]`), &pt)
		require.ErrorIs(t, err, models.ErrPopularTimesFormat)
	})

	t.Run("non integer hours", func(t *testing.T) {
		var pt models.PopularTimes
		err := json.Unmarshal([]byte(`{"0":["busy"]}`), &pt)
		require.Error(t, err)
	})
}

func TestPopularTimes_Marshal(t *testing.T) {
	pt := models.PopularTimes{{Day: "2", Hours: []int{1, 2}}, {Day: "1", Hours: nil}}

	data, err := json.Marshal(pt)

	require.NoError(t, err)
	assert.JSONEq(t, `{"2":[1,2],"1":[]}`, string(data))
	assert.Equal(t, `{"2":[1,2],"1":[]}`, string(data))

	empty, err := json.Marshal(models.PopularTimes{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestPopularTimes_Hour(t *testing.T) {
	pt := models.PopularTimes{{Day: "0", Hours: []int{10, 20, 30}}}

	assert.Equal(t, 20, pt.Hour(0, 1))
	assert.Equal(t, 0, pt.Hour(0, 23), "hour beyond the curve defaults to 0")
	assert.Equal(t, 0, pt.Hour(4, 1), "missing weekday defaults to 0")
	assert.Equal(t, 0, models.PopularTimes(nil).Hour(0, 0))
}

func TestPopularTimes_TopDays(t *testing.T) {
	pt := models.PopularTimes{
		{Day: "0", Hours: hours(1)},
		{Day: "1", Hours: hours(5)},
		{Day: "2", Hours: hours(3)},
		{Day: "3", Hours: hours(5)},
		{Day: "4", Hours: hours(2)},
	}

	top := pt.TopDays(3)

	require.Len(t, top, 3)
	assert.Equal(t, "1", top[0].Day)
	assert.Equal(t, "3", top[1].Day, "equal totals keep provider order")
	assert.Equal(t, "2", top[2].Day)
	assert.Equal(t, "0", pt[0].Day, "original profile is not reordered")

	assert.Len(t, pt[:2].TopDays(3), 2)
	assert.Equal(t, []models.DayProfile{}, models.PopularTimes(nil).TopDays(3))
}

func TestDayProfile_JSON(t *testing.T) {
	data, err := json.Marshal(models.DayProfile{Day: "5", Hours: []int{0, 7}})
	require.NoError(t, err)
	assert.Equal(t, `["5",[0,7]]`, string(data))

	var day models.DayProfile
	require.NoError(t, json.Unmarshal(data, &day))
	assert.Equal(t, models.DayProfile{Day: "5", Hours: []int{0, 7}}, day)

	require.Error(t, json.Unmarshal([]byte(`["5"]`), &day))
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, models.WeekdayIndex(time.Monday))
	assert.Equal(t, 5, models.WeekdayIndex(time.Saturday))
	assert.Equal(t, 6, models.WeekdayIndex(time.Sunday))
}

func TestPlace_RatingValue(t *testing.T) {
	assert.InEpsilon(t, 4.5, models.Place{Rating: "4.5"}.RatingValue(), 0.0001)
	assert.Zero(t, models.Place{}.RatingValue())
	assert.Zero(t, models.Place{Rating: "n/a"}.RatingValue())
}
