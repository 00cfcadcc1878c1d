package meetingfinder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
)

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf(
		"%02d:%02d",

		minutes/60,
		minutes%60,
	)
}

// ParseClock converts HH:MM to minutes since midnight.
// 24:00 is accepted as the end of the day.
func ParseClock(clock string) (int, error) {
	hours, minutes, found := strings.Cut(strings.TrimSpace(clock), ":")
	if !found {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "ParseClock",
				InputName:  "clock",
				InputValue: clock,
				Issue: errors.New(
					"expected HH:MM",
				),
			}
	}

	h, errHours := strconv.Atoi(hours)
	if errHours != nil {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "ParseClock",
				InputName:  "hours",
				InputValue: hours,
				Issue:      errHours,
			}
	}

	m, errMinutes := strconv.Atoi(minutes)
	if errMinutes != nil {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "ParseClock",
				InputName:  "minutes",
				InputValue: minutes,
				Issue:      errMinutes,
			}
	}

	result := TimeInMinutes(h, m)

	if h < 0 || m < 0 || m > 59 || result > MinutesPerDay {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "ParseClock",
				InputName:  "clock",
				InputValue: clock,
				Issue: errors.New(
					"outside of day",
				),
			}
	}

	return result,
		nil
}
