// Package availability computes which time slots a provider can legally
// offer. It is pure: deterministic given its inputs, no storage access, no
// mutation, so results can be cached per provider per day.
package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// OpeningHour and ClosingHour bound the provider working day. Slot
	// start times run from 10:00 up to, but not including, 21:00.
	OpeningHour = 10
	ClosingHour = 21

	// SlotInterval is the fixed slot granularity.
	SlotInterval = 30 * time.Minute

	// HorizonDays is the rolling booking window.
	HorizonDays = 7
)

// slotLabelLayout renders a slot start as a clock label, e.g. "10:00 AM",
// "03:30 PM". Labels are the keys stored in a provider's booked-slot sets,
// so the format is load-bearing and must stay stable.
const slotLabelLayout = "03:04 PM"

// Slot is one offerable start time.
type Slot struct {
	Start time.Time `json:"datetime"`
	Time  string    `json:"time"`
}

// DaySlots is the ordered offerable sequence for one calendar day. Slots
// may be empty, e.g. when the provider is fully booked or today's window
// has already closed.
type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// DateKey formats a calendar date as "day_month_year" without zero
// padding. This key addresses the provider's booked-slot map and the
// slotDate field of appointment records.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%d_%d_%d", t.Day(), int(t.Month()), t.Year())
}

// SlotLabel formats a slot start time as its booked-slot set key.
func SlotLabel(t time.Time) string {
	return t.Format(slotLabelLayout)
}

// OfferableSlots returns, for each of the next HorizonDays calendar days,
// the ordered slots not present in slotsBooked. For day zero the first
// candidate is clamped to max(now+1h, OpeningHour) with minutes snapped to
// 30 when the current minute has passed the half hour, and 0 otherwise.
func OfferableSlots(now time.Time, slotsBooked map[string][]string) []DaySlots {
	days := make([]DaySlots, 0, HorizonDays)

	for i := 0; i < HorizonDays; i++ {
		day := now.AddDate(0, 0, i)
		end := time.Date(day.Year(), day.Month(), day.Day(), ClosingHour, 0, 0, 0, day.Location())
		cur := firstCandidate(now, day, i == 0)

		key := DateKey(day)
		booked := slotsBooked[key]

		slots := []Slot{}
		for cur.Before(end) {
			label := SlotLabel(cur)
			if !containsLabel(booked, label) {
				slots = append(slots, Slot{Start: cur, Time: label})
			}
			cur = cur.Add(SlotInterval)
		}
		days = append(days, DaySlots{Date: key, Slots: slots})
	}
	return days
}

// firstCandidate computes the opening candidate for a day. Past-day
// remainders resolve naturally: when the clamped start reaches ClosingHour
// the day yields no slots.
func firstCandidate(now, day time.Time, today bool) time.Time {
	hour, minute := OpeningHour, 0
	if today {
		hour = now.Hour() + 1
		if hour < OpeningHour {
			hour = OpeningHour
		}
		if now.Minute() > 30 {
			minute = 30
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// ValidateSlot re-validates a client-supplied (slotDate, slotTime) pair
// server side: the pair must be a value OfferableSlots could emit for a
// provider with no bookings. It does not consult the booked-slot set; a
// well-formed but already-claimed slot is the claim path's concern, not a
// validation failure.
func ValidateSlot(now time.Time, slotDate, slotTime string) (time.Time, error) {
	day, err := ParseDateKey(slotDate, now.Location())
	if err != nil {
		return time.Time{}, err
	}

	clock, err := time.Parse(slotLabelLayout, slotTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed slot time %q", slotTime)
	}
	if clock.Minute() != 0 && clock.Minute() != 30 {
		return time.Time{}, fmt.Errorf("slot time %q not on a half-hour boundary", slotTime)
	}
	if clock.Hour() < OpeningHour || clock.Hour() >= ClosingHour {
		return time.Time{}, fmt.Errorf("slot time %q outside working hours", slotTime)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location())

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if start.Before(todayStart) {
		return time.Time{}, fmt.Errorf("slot date %q is in the past", slotDate)
	}
	if !start.Before(todayStart.AddDate(0, 0, HorizonDays)) {
		return time.Time{}, fmt.Errorf("slot date %q is beyond the booking window", slotDate)
	}
	if DateKey(now) == slotDate && start.Before(firstCandidate(now, now, true)) {
		return time.Time{}, fmt.Errorf("slot time %q has already passed", slotTime)
	}
	return start, nil
}

// ParseDateKey parses a "day_month_year" key back into a calendar date.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed slot date %q", key)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("malformed slot date %q", key)
		}
		nums[i] = n
	}
	day := time.Date(nums[2], time.Month(nums[1]), nums[0], 0, 0, 0, 0, loc)
	// time.Date normalizes overflow (e.g. 32_1 becomes 1_2); reject keys
	// that do not round-trip.
	if DateKey(day) != key {
		return time.Time{}, fmt.Errorf("invalid slot date %q", key)
	}
	return day, nil
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
