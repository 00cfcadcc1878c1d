package calendar

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/TudorHulban/meetingfinder"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// LoadICS returns the events of all calendars in r that intersect day,
// with their times as wall clock minutes of day's location.
// Recurring events contribute every occurrence touching the day.
// Cancelled, transparent and attendee-less events do not block anyone and are skipped.
func LoadICS(r io.Reader, day time.Time) ([]meetingfinder.Event, error) {
	decoder := ical.NewDecoder(r)
	dayStart := midnight(day)

	var result []meetingfinder.Event

	for {
		cal, errDecode := decoder.Decode()
		if errors.Is(errDecode, io.EOF) {
			break
		}
		if errDecode != nil {
			return nil,
				fmt.Errorf("decode calendar: %w", errDecode)
		}

		for _, vevent := range cal.Events() {
			events, errConvert := convertICSEvent(&vevent, dayStart)
			if errConvert != nil {
				return nil,
					errConvert
			}

			result = append(result, events...)
		}
	}

	return result,
		nil
}

func convertICSEvent(vevent *ical.Event, dayStart time.Time) ([]meetingfinder.Event, error) {
	if isNotBlocking(vevent) {
		return nil, nil
	}

	attendees := icsAttendees(vevent)
	if len(attendees) == 0 {
		return nil, nil
	}

	start, errStart := vevent.DateTimeStart(dayStart.Location())
	if errStart != nil {
		return nil,
			fmt.Errorf("event start: %w", errStart)
	}

	end, errEnd := vevent.DateTimeEnd(dayStart.Location())
	if errEnd != nil {
		return nil,
			fmt.Errorf("event end: %w", errEnd)
	}

	id := uuid.New().String()
	if uid := vevent.Props.Get(ical.PropUID); uid != nil && len(uid.Value) > 0 {
		id = uid.Value
	}

	title, _ := vevent.Props.Text(ical.PropSummary)

	occurrences, errOccurrences := occurrencesOnDay(vevent, start, end.Sub(start), dayStart)
	if errOccurrences != nil {
		return nil,
			fmt.Errorf("event %s: %w", id, errOccurrences)
	}

	result := make([]meetingfinder.Event, 0, len(occurrences))

	for _, occurrenceStart := range occurrences {
		when, onDay := minutesOnDay(
			occurrenceStart,
			occurrenceStart.Add(end.Sub(start)),
			dayStart,
		)
		if !onDay {
			continue
		}

		occurrenceID := id
		if len(occurrences) > 1 || !occurrenceStart.Equal(start) {
			occurrenceID = id + "/" + occurrenceStart.UTC().Format("20060102T150405Z")
		}

		event, errCr := meetingfinder.NewEvent(
			&meetingfinder.ParamsNewEvent{
				ID:        occurrenceID,
				Title:     title,
				Attendees: attendees,
				When:      when,
			},
		)
		if errCr != nil {
			return nil,
				fmt.Errorf("event %s: %w", occurrenceID, errCr)
		}

		result = append(result, *event)
	}

	return result,
		nil
}

// occurrencesOnDay returns the starts of the occurrences that may touch the day.
// Non recurring events have the single start.
func occurrencesOnDay(vevent *ical.Event, start time.Time, duration time.Duration, dayStart time.Time) ([]time.Time, error) {
	recurrence, errRecurrence := vevent.RecurrenceSet(dayStart.Location())
	if errRecurrence != nil {
		return nil,
			fmt.Errorf("recurrence: %w", errRecurrence)
	}

	if recurrence == nil {
		return []time.Time{start},
			nil
	}

	// occurrences starting the previous day can still run into this one
	return recurrence.Between(
			dayStart.Add(-duration),
			nextMidnight(dayStart),
			true,
		),
		nil
}

func isNotBlocking(vevent *ical.Event) bool {
	if status := vevent.Props.Get(ical.PropStatus); status != nil &&
		strings.EqualFold(status.Value, "CANCELLED") {
		return true
	}

	if transparency := vevent.Props.Get(ical.PropTransparency); transparency != nil &&
		strings.EqualFold(transparency.Value, "TRANSPARENT") {
		return true
	}

	return false
}

func icsAttendees(vevent *ical.Event) []string {
	var result []string

	for _, name := range []string{ical.PropOrganizer, ical.PropAttendee} {
		for _, prop := range vevent.Props.Values(name) {
			if attendee := normalizeAttendee(prop.Value); len(attendee) > 0 {
				result = append(result, attendee)
			}
		}
	}

	return result
}

func normalizeAttendee(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))

	return strings.TrimPrefix(lowered, "mailto:")
}

func midnight(day time.Time) time.Time {
	return time.Date(
		day.Year(),
		day.Month(),
		day.Day(),
		0, 0, 0, 0,
		day.Location(),
	)
}

func nextMidnight(dayStart time.Time) time.Time {
	return time.Date(
		dayStart.Year(),
		dayStart.Month(),
		dayStart.Day()+1,
		0, 0, 0, 0,
		dayStart.Location(),
	)
}

// minutesOnDay maps the interval onto wall clock minutes of the day,
// so that days with a daylight saving change still span [0, MinutesPerDay].
// The start is floored and the end ceiled so that partial minutes stay busy.
func minutesOnDay(start, end, dayStart time.Time) (meetingfinder.TimeRange, bool) {
	dayEnd := nextMidnight(dayStart)

	if !end.After(dayStart) || !start.Before(dayEnd) {
		return meetingfinder.TimeRange{},
			false
	}

	startMinute := meetingfinder.StartOfDay
	if start.After(dayStart) {
		startMinute = wallClockMinute(start.In(dayStart.Location()))
	}

	endMinute := meetingfinder.MinutesPerDay
	if end.Before(dayEnd) {
		local := end.In(dayStart.Location())

		endMinute = wallClockMinute(local)
		if local.Second() > 0 || local.Nanosecond() > 0 {
			endMinute++
		}
	}

	when, errRange := meetingfinder.NewTimeRangeStartEnd(startMinute, endMinute)
	if errRange != nil {
		return meetingfinder.TimeRange{},
			false
	}

	return when,
		true
}

func wallClockMinute(local time.Time) int {
	return meetingfinder.TimeInMinutes(local.Hour(), local.Minute())
}
