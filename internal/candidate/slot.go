package candidate

import (
	"time"

	"github.com/spigell/talentcrew/internal/random"
)

const (
	slotMinDaysAhead = 2
	slotDaySpan      = 6 // 2..7 days ahead
	slotFirstHour    = 9
	slotHourSpan     = 8 // 9..16
	slotMinuteStep   = 15
)

// NextSlot picks an interview slot two to seven calendar days after now, on a quarter hour
// between 09:00 and 16:45, in now's location.
func NextSlot(src random.Source, now time.Time) time.Time {
	days := slotMinDaysAhead + src.IntN(slotDaySpan)
	hour := slotFirstHour + src.IntN(slotHourSpan)
	minute := src.IntN(60/slotMinuteStep) * slotMinuteStep

	y, m, d := now.Date()
	return time.Date(y, m, d+days, hour, minute, 0, 0, now.Location())
}
