package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestOfferableSlotsFreeDayBeforeOpening(t *testing.T) {
	now := at(2026, time.March, 2, 8, 15)

	days := OfferableSlots(now, nil)
	require.Len(t, days, HorizonDays)

	day0 := days[0]
	assert.Equal(t, "2_3_2026", day0.Date)
	require.Len(t, day0.Slots, 22)
	assert.Equal(t, "10:00 AM", day0.Slots[0].Time)
	assert.Equal(t, "10:30 AM", day0.Slots[1].Time)
	assert.Equal(t, "08:30 PM", day0.Slots[len(day0.Slots)-1].Time)
}

func TestOfferableSlotsDayZeroClamp(t *testing.T) {
	// 14:10 -> first candidate 15:00 (next full hour, minutes below 30).
	now := at(2026, time.March, 2, 14, 10)
	days := OfferableSlots(now, nil)
	require.NotEmpty(t, days[0].Slots)
	assert.Equal(t, "03:00 PM", days[0].Slots[0].Time)

	// 14:40 -> minutes past the half hour snap to :30.
	now = at(2026, time.March, 2, 14, 40)
	days = OfferableSlots(now, nil)
	require.NotEmpty(t, days[0].Slots)
	assert.Equal(t, "03:30 PM", days[0].Slots[0].Time)
}

func TestOfferableSlotsClosedDayZero(t *testing.T) {
	now := at(2026, time.March, 2, 20, 45)
	days := OfferableSlots(now, nil)
	assert.Empty(t, days[0].Slots)
	// Later days are unaffected by the day-zero clamp.
	assert.Len(t, days[1].Slots, 22)
	assert.Equal(t, "10:00 AM", days[1].Slots[0].Time)
}

func TestOfferableSlotsSkipsBooked(t *testing.T) {
	now := at(2026, time.March, 2, 8, 0)
	booked := map[string][]string{
		"2_3_2026": {"10:00 AM", "08:30 PM"},
	}

	days := OfferableSlots(now, booked)
	require.Len(t, days[0].Slots, 20)
	assert.Equal(t, "10:30 AM", days[0].Slots[0].Time)
	assert.Equal(t, "08:00 PM", days[0].Slots[len(days[0].Slots)-1].Time)
}

func TestOfferableSlotsFullyBookedDay(t *testing.T) {
	now := at(2026, time.March, 2, 8, 0)
	all := make([]string, 0, 22)
	cur := at(2026, time.March, 2, OpeningHour, 0)
	for cur.Hour() < ClosingHour {
		all = append(all, SlotLabel(cur))
		cur = cur.Add(SlotInterval)
	}

	days := OfferableSlots(now, map[string][]string{"2_3_2026": all})
	assert.Empty(t, days[0].Slots)
	assert.Len(t, days[1].Slots, 22)
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2_3_2026", DateKey(at(2026, time.March, 2, 0, 0)))
	assert.Equal(t, "31_12_2025", DateKey(at(2025, time.December, 31, 0, 0)))
}

func TestParseDateKey(t *testing.T) {
	day, err := ParseDateKey("2_3_2026", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, at(2026, time.March, 2, 0, 0), day)

	for _, key := range []string{"", "2_3", "a_b_c", "32_1_2026", "02_3_2026"} {
		_, err := ParseDateKey(key, time.UTC)
		assert.Error(t, err, "key %q", key)
	}
}

func TestValidateSlot(t *testing.T) {
	now := at(2026, time.March, 2, 9, 0)

	start, err := ValidateSlot(now, "2_3_2026", "10:00 AM")
	require.NoError(t, err)
	assert.Equal(t, at(2026, time.March, 2, 10, 0), start)

	start, err = ValidateSlot(now, "8_3_2026", "08:30 PM")
	require.NoError(t, err)
	assert.Equal(t, at(2026, time.March, 8, 20, 30), start)
}

func TestValidateSlotRejections(t *testing.T) {
	now := at(2026, time.March, 2, 14, 10)

	cases := []struct {
		name     string
		slotDate string
		slotTime string
	}{
		{"malformed date", "2026-03-02", "10:00 AM"},
		{"malformed time", "2_3_2026", "10:15"},
		{"off-grid minutes", "2_3_2026", "10:15 AM"},
		{"before opening", "2_3_2026", "09:30 AM"},
		{"at closing", "2_3_2026", "09:00 PM"},
		{"past day", "1_3_2026", "10:00 AM"},
		{"beyond horizon", "9_3_2026", "10:00 AM"},
		{"already passed today", "2_3_2026", "02:30 PM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateSlot(now, tc.slotDate, tc.slotTime)
			assert.Error(t, err)
		})
	}
}
