package meetingfinder

import (
	"cmp"
	"errors"
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
)

const (
	StartOfDay    = 0
	EndOfDay      = 23*60 + 59 // last minute of the day
	MinutesPerDay = 24 * 60
)

var ErrInvalidRange = errors.New("invalid time range")

// TimeRange is a half-open interval of minutes [start, start+duration).
type TimeRange struct {
	start    int
	duration int
}

var WholeDay = TimeRange{
	start:    StartOfDay,
	duration: MinutesPerDay,
}

func TimeInMinutes(hours, minutes int) int {
	return hours*60 + minutes
}

func NewTimeRangeStartDuration(start, duration int) (TimeRange, error) {
	if start < 0 {
		return TimeRange{},
			fmt.Errorf(
				"%w: %w",
				ErrInvalidRange,
				goerrors.ErrInvalidInput{
					Caller:     "NewTimeRangeStartDuration",
					InputName:  "start",
					InputValue: start,
					Issue: goerrors.ErrNegativeInput{
						InputName: "start",
					},
				},
			)
	}

	if duration <= 0 {
		return TimeRange{},
			fmt.Errorf(
				"%w: %w",
				ErrInvalidRange,
				goerrors.ErrInvalidInput{
					Caller:     "NewTimeRangeStartDuration",
					InputName:  "duration",
					InputValue: duration,
					Issue: errors.New(
						"duration must be positive",
					),
				},
			)
	}

	return TimeRange{
			start:    start,
			duration: duration,
		},
		nil
}

// NewTimeRangeStartEnd builds [start, end).
func NewTimeRangeStartEnd(start, end int) (TimeRange, error) {
	return NewTimeRangeStartDuration(start, end-start)
}

// NewTimeRangeStartEndInclusive counts the end minute as part of the range.
func NewTimeRangeStartEndInclusive(start, end int) (TimeRange, error) {
	return NewTimeRangeStartDuration(start, end+1-start)
}

// mustTimeRange is for values already known to be valid.
func mustTimeRange(start, end int) TimeRange {
	return TimeRange{
		start:    start,
		duration: end - start,
	}
}

func (tr TimeRange) Start() int {
	return tr.start
}

func (tr TimeRange) Duration() int {
	return tr.duration
}

func (tr TimeRange) End() int {
	return tr.start + tr.duration
}

func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.start < other.End() && other.start < tr.End()
}

func (tr TimeRange) Contains(point int) bool {
	return tr.start <= point && point < tr.End()
}

func (tr TimeRange) ContainsRange(other TimeRange) bool {
	return tr.start <= other.start && other.End() <= tr.End()
}

// clip returns the part of the range inside window.
// False when nothing is left.
func (tr TimeRange) clip(window TimeRange) (TimeRange, bool) {
	start := max(tr.start, window.start)
	end := min(tr.End(), window.End())

	if start >= end {
		return TimeRange{},
			false
	}

	return mustTimeRange(start, end),
		true
}

func (tr TimeRange) String() string {
	return fmt.Sprintf(
		"Range: [%d, %d)",

		tr.start,
		tr.End(),
	)
}

// Clock renders the range as HH:MM-HH:MM.
func (tr TimeRange) Clock() string {
	return FormatClock(tr.start) + "-" + FormatClock(tr.End())
}

// ByStart orders by start, ties broken by duration.
func ByStart(a, b TimeRange) int {
	if c := cmp.Compare(a.start, b.start); c != 0 {
		return c
	}

	return cmp.Compare(a.duration, b.duration)
}

func ByEnd(a, b TimeRange) int {
	if c := cmp.Compare(a.End(), b.End()); c != 0 {
		return c
	}

	return cmp.Compare(a.start, b.start)
}
