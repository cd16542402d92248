package timezone

import (
	"time"
	// embedded zone database for images without /usr/share/zoneinfo
	_ "time/tzdata"

	"github.com/BruksfildServices01/salon-booking/internal/domain/booking"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// TodayIn is the calendar date in tz formatted as a slot date.
func TodayIn(tz string) string {
	return NowIn(tz).Format(booking.DateLayout)
}
