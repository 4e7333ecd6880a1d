package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"
)

// ErrPopularTimesFormat is returned when the populartimes field is not a JSON object.
var ErrPopularTimesFormat = errors.New("popular times must be a JSON object")

// DayProfile is the hourly popularity curve of one weekday.
// It is encoded as the pair ["<day>", [hours...]].
type DayProfile struct {
	Day   string // Weekday key, "0" is Monday.
	Hours []int  // Hourly popularity values on a 0-100 scale.
}

// Total returns the sum of all hourly values.
func (d DayProfile) Total() int {
	total := 0
	for _, v := range d.Hours {
		total += v
	}

	return total
}

func (d DayProfile) MarshalJSON() ([]byte, error) {
	hours := d.Hours
	if hours == nil {
		hours = []int{}
	}

	return json.Marshal([]any{d.Day, hours})
}

func (d *DayProfile) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to decode day profile: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("day profile must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &d.Day); err != nil {
		return fmt.Errorf("failed to decode day key: %w", err)
	}
	if err := json.Unmarshal(pair[1], &d.Hours); err != nil {
		return fmt.Errorf("failed to decode day hours: %w", err)
	}

	return nil
}

// PopularTimes maps weekday keys to hourly popularity, keeping the order the provider sent them in.
type PopularTimes []DayProfile

// WeekdayIndex converts a time.Weekday into the provider's weekday index, where Monday is 0.
func WeekdayIndex(day time.Weekday) int {
	const daysInWeek = 7
	return (int(day) + daysInWeek - 1) % daysInWeek
}

// Day returns the profile stored under the given weekday index.
func (pt PopularTimes) Day(weekday int) (DayProfile, bool) {
	key := strconv.Itoa(weekday)
	for _, day := range pt {
		if day.Day == key {
			return day, true
		}
	}

	return DayProfile{}, false
}

// Hour returns the historical popularity for weekday and hour, or 0 when either is absent.
func (pt PopularTimes) Hour(weekday, hour int) int {
	day, ok := pt.Day(weekday)
	if !ok || hour < 0 || hour >= len(day.Hours) {
		return 0
	}

	return day.Hours[hour]
}

// TopDays returns up to n days ordered by descending total popularity.
// Days with equal totals keep their original order.
func (pt PopularTimes) TopDays(n int) []DayProfile {
	days := slices.Clone(pt)
	slices.SortStableFunc(days, func(a, b DayProfile) int {
		return b.Total() - a.Total()
	})
	if len(days) > n {
		days = days[:n]
	}
	if days == nil {
		return []DayProfile{}
	}

	return days
}

func (pt PopularTimes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, day := range pt {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(day.Day)
		if err != nil {
			return nil, err
		}
		hours := day.Hours
		if hours == nil {
			hours = []int{}
		}
		values, err := json.Marshal(hours)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(values)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (pt *PopularTimes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read popular times: %w", err)
	}
	if tok == nil {
		*pt = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrPopularTimesFormat
	}

	var days PopularTimes
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read popular times key: %w", err)
		}
		key, _ := keyTok.(string)

		var hours []int
		if err = dec.Decode(&hours); err != nil {
			return fmt.Errorf("failed to decode popular times for day %q: %w", key, err)
		}
		days = append(days, DayProfile{Day: key, Hours: hours})
	}

	if _, err = dec.Token(); err != nil {
		return fmt.Errorf("failed to read popular times: %w", err)
	}
	*pt = days

	return nil
}
