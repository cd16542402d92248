package booking

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	DefaultDayStart    = "09:00"
	DefaultDayEnd      = "19:00"
	DefaultSlotMinutes = 30
)

// Window is the working period slots are cut from.
type Window struct {
	Start       string
	End         string
	SlotMinutes int
}

func DefaultWindow() Window {
	return Window{
		Start:       DefaultDayStart,
		End:         DefaultDayEnd,
		SlotMinutes: DefaultSlotMinutes,
	}
}

func (w Window) bounds() (int, int, error) {
	start, err := ParseClock(w.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(w.End)
	if err != nil {
		return 0, 0, err
	}
	if end <= start || w.SlotMinutes <= 0 {
		return 0, 0, httperr.ErrValidation("invalid_window")
	}
	return start, end, nil
}

// SlotCount is the number of whole slots that fit in the window.
func (w Window) SlotCount() int {
	start, end, err := w.bounds()
	if err != nil {
		return 0
	}
	return (end - start) / w.SlotMinutes
}

// BuildDaySlots cuts the window into contiguous unbooked slots ordered by
// start time. Nothing is persisted.
func BuildDaySlots(merchantID, workerID uint, date string, w Window) ([]models.Slot, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	start, end, err := w.bounds()
	if err != nil {
		return nil, err
	}

	slots := make([]models.Slot, 0, (end-start)/w.SlotMinutes)
	for cur := start; cur+w.SlotMinutes <= end; cur += w.SlotMinutes {
		slots = append(slots, models.Slot{
			MerchantID:      merchantID,
			WorkerID:        workerID,
			Date:            date,
			StartTime:       FormatClock(cur),
			EndTime:         FormatClock(cur + w.SlotMinutes),
			IsBooked:        false,
			ServiceDuration: w.SlotMinutes,
		})
	}

	return slots, nil
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date")
	}
	return d, nil
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil || len(s) != len(ClockLayout) {
		return 0, httperr.ErrValidation("invalid_time")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Clock strings are zero padded, so lexical order is time order.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	if aStart >= aEnd || bStart >= bEnd {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}

// DurationBetween returns the minutes from start to end.
func DurationBetween(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}
