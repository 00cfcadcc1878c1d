package meetingfinder

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	halfHour = 30
	oneHour  = 60
)

func newTestEvent(start, end int, attendees ...string) Event {
	return Event{
		when:      mustTimeRange(start, end),
		attendees: NewAttendeeSet(attendees...),
	}
}

// freeByMinute marks every busy minute of the day and collects
// the maximal free runs of at least minDuration minutes.
func freeByMinute(events []Event, attendees AttendeeSet, minDuration int) []TimeRange {
	var busy [MinutesPerDay]bool

	for _, event := range events {
		if !event.IsRelevantTo(attendees) {
			continue
		}

		for minute := event.When().Start(); minute < min(event.When().End(), MinutesPerDay); minute++ {
			busy[minute] = true
		}
	}

	result := []TimeRange{}
	runStart := -1

	for minute := 0; minute <= MinutesPerDay; minute++ {
		isFree := minute < MinutesPerDay && !busy[minute]

		if isFree && runStart < 0 {
			runStart = minute
		}

		if !isFree && runStart >= 0 {
			if minute-runStart >= minDuration {
				result = append(result, mustTimeRange(runStart, minute))
			}

			runStart = -1
		}
	}

	return result
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name      string
		events    []Event
		mandatory []string
		optional  []string
		duration  int

		expected                 []TimeRange
		expectedOptionalIncluded bool
	}{
		{
			name:      "1. No events - whole day",
			mandatory: []string{"A"},
			duration:  oneHour,

			expected:                 []TimeRange{WholeDay},
			expectedOptionalIncluded: true,
		},
		{
			name:     "2. No attendees at all - whole day",
			events:   []Event{newTestEvent(600, 660, "A")},
			duration: halfHour,

			expected:                 []TimeRange{WholeDay},
			expectedOptionalIncluded: true,
		},
		{
			name:      "3. Scenario A - one event splits the day",
			events:    []Event{newTestEvent(600, 660, "A")},
			mandatory: []string{"A"},
			duration:  halfHour,

			expected: []TimeRange{
				mustTimeRange(0, 600),
				mustTimeRange(660, MinutesPerDay),
			},
			expectedOptionalIncluded: true,
		},
		{
			name: "4. Scenario B - touching events of different attendees merge",
			events: []Event{
				newTestEvent(540, 600, "A"),
				newTestEvent(600, 660, "B"),
			},
			mandatory: []string{"A", "B"},
			duration:  halfHour,

			expected: []TimeRange{
				mustTimeRange(0, 540),
				mustTimeRange(660, MinutesPerDay),
			},
			expectedOptionalIncluded: true,
		},
		{
			name:      "5. Scenario C - full day request with an event",
			events:    []Event{newTestEvent(600, 630, "A")},
			mandatory: []string{"A"},
			duration:  MinutesPerDay,

			expected: []TimeRange{},
		},
		{
			name:      "6. Scenario D - zero duration",
			mandatory: []string{"A"},
			duration:  0,

			expected: []TimeRange{},
		},
		{
			name:      "7. Duration longer than a day",
			mandatory: []string{"A"},
			duration:  MinutesPerDay + 1,

			expected: []TimeRange{},
		},
		{
			name:      "8. Irrelevant events ignored",
			events:    []Event{newTestEvent(600, 660, "B")},
			mandatory: []string{"A"},
			duration:  halfHour,

			expected:                 []TimeRange{WholeDay},
			expectedOptionalIncluded: true,
		},
		{
			name: "9. Nested events",
			events: []Event{
				newTestEvent(480, 900, "A"),
				newTestEvent(540, 600, "B"),
			},
			mandatory: []string{"A", "B"},
			duration:  halfHour,

			expected: []TimeRange{
				mustTimeRange(0, 480),
				mustTimeRange(900, MinutesPerDay),
			},
			expectedOptionalIncluded: true,
		},
		{
			name: "10. Gap too short is dropped",
			events: []Event{
				newTestEvent(0, 500, "A"),
				newTestEvent(520, MinutesPerDay, "B"),
			},
			mandatory: []string{"A", "B"},
			duration:  halfHour,

			expected: []TimeRange{},
		},
		{
			name: "11. Gap just long enough is kept",
			events: []Event{
				newTestEvent(0, 500, "A"),
				newTestEvent(530, MinutesPerDay, "B"),
			},
			mandatory: []string{"A", "B"},
			duration:  halfHour,

			expected: []TimeRange{
				mustTimeRange(500, 530),
			},
			expectedOptionalIncluded: true,
		},
		{
			name: "12. Optional attendee considered when possible",
			events: []Event{
				newTestEvent(480, 540, "A"),
				newTestEvent(600, 660, "C"),
			},
			mandatory: []string{"A"},
			optional:  []string{"C"},
			duration:  halfHour,

			expected: []TimeRange{
				mustTimeRange(0, 480),
				mustTimeRange(540, 600),
				mustTimeRange(660, MinutesPerDay),
			},
			expectedOptionalIncluded: true,
		},
		{
			name: "13. Optional attendee busy all day - fallback to mandatory",
			events: []Event{
				newTestEvent(480, 540, "A"),
				newTestEvent(0, MinutesPerDay, "C"),
			},
			mandatory: []string{"A"},
			optional:  []string{"C"},
			duration:  halfHour,

			expected: []TimeRange{
				mustTimeRange(0, 480),
				mustTimeRange(540, MinutesPerDay),
			},
		},
		{
			name: "14. Optional attendees leave only a short gap - fallback",
			events: []Event{
				newTestEvent(480, 540, "A"),
				newTestEvent(0, 570, "C"),
				newTestEvent(590, MinutesPerDay, "C"),
			},
			mandatory: []string{"A"},
			optional:  []string{"C"},
			duration:  halfHour,

			expected: []TimeRange{
				mustTimeRange(0, 480),
				mustTimeRange(540, MinutesPerDay),
			},
		},
		{
			name: "15. Only optional attendees, all busy - whole day",
			events: []Event{
				newTestEvent(0, MinutesPerDay, "C"),
			},
			optional: []string{"C"},
			duration: halfHour,

			expected: []TimeRange{WholeDay},
		},
		{
			name: "16. Only optional attendees with free time",
			events: []Event{
				newTestEvent(0, 600, "C"),
			},
			optional: []string{"C"},
			duration: halfHour,

			expected: []TimeRange{
				mustTimeRange(600, MinutesPerDay),
			},
			expectedOptionalIncluded: true,
		},
		{
			name: "17. Event past end of day is clipped",
			events: []Event{
				newTestEvent(1400, 1500, "A"),
			},
			mandatory: []string{"A"},
			duration:  halfHour,

			expected: []TimeRange{
				mustTimeRange(0, 1400),
			},
			expectedOptionalIncluded: true,
		},
		{
			name: "18. Event without attendees ignored",
			events: []Event{
				newTestEvent(600, 660),
			},
			mandatory: []string{"A"},
			duration:  halfHour,

			expected:                 []TimeRange{WholeDay},
			expectedOptionalIncluded: true,
		},
		{
			name: "19. Unsorted overlapping events",
			events: []Event{
				newTestEvent(700, 800, "A"),
				newTestEvent(540, 620, "A"),
				newTestEvent(600, 710, "A"),
			},
			mandatory: []string{"A"},
			duration:  oneHour,

			expected: []TimeRange{
				mustTimeRange(0, 540),
				mustTimeRange(800, MinutesPerDay),
			},
			expectedOptionalIncluded: true,
		},
		{
			name: "20. Attendee both mandatory and optional",
			events: []Event{
				newTestEvent(600, 660, "A"),
			},
			mandatory: []string{"A"},
			optional:  []string{"A"},
			duration:  halfHour,

			expected: []TimeRange{
				mustTimeRange(0, 600),
				mustTimeRange(660, MinutesPerDay),
			},
			expectedOptionalIncluded: true,
		},
	}

	finder := NewMeetingFinder(nil)

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				request := NewMeetingRequest(
					&ParamsNewMeetingRequest{
						Mandatory:       tt.mandatory,
						Optional:        tt.optional,
						DurationMinutes: tt.duration,
					},
				)

				response := finder.QueryDetailed(tt.events, request)
				require.NotNil(t, response)
				require.Equal(t, tt.expected, response.Slots)
				require.Equal(t, tt.expectedOptionalIncluded, response.OptionalAttendeesIncluded)

				require.Equal(t,
					tt.expected,
					FindMeetingTimes(tt.events, request),
				)
			},
		)
	}
}

func TestQueryNilRequest(t *testing.T) {
	require.Empty(t,
		FindMeetingTimes(
			[]Event{newTestEvent(0, 60, "A")},
			nil,
		),
	)
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	events := []Event{
		newTestEvent(700, 800, "A"),
		newTestEvent(540, 620, "B"),
		newTestEvent(600, 710, "A"),
	}
	snapshot := slices.Clone(events)

	request := NewMeetingRequest(
		&ParamsNewMeetingRequest{
			Mandatory:       []string{"A"},
			Optional:        []string{"B"},
			DurationMinutes: halfHour,
		},
	)

	_ = FindMeetingTimes(events, request)

	require.Equal(t, snapshot, events)
	require.Equal(t, []string{"A"}, request.MandatoryAttendees())
	require.Equal(t, []string{"B"}, request.OptionalAttendees())
}

func TestQueryLogsFallback(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	finder := NewMeetingFinder(
		&ParamsNewMeetingFinder{
			Logger: zap.New(core),
		},
	)

	request := NewMeetingRequest(
		&ParamsNewMeetingRequest{
			Mandatory:       []string{"A"},
			Optional:        []string{"C"},
			DurationMinutes: halfHour,
		},
	)

	slots := finder.Query(
		[]Event{newTestEvent(0, MinutesPerDay, "C")},
		request,
	)
	require.Equal(t, []TimeRange{WholeDay}, slots)
	require.Equal(t, 1, logs.FilterMessage("falling back to mandatory attendees").Len())

	_ = finder.Query(
		nil,
		NewMeetingRequest(&ParamsNewMeetingRequest{}),
	)
	require.Equal(t, 1, logs.FilterMessage("invalid request").Len())
}

func TestQueryProperties(t *testing.T) {
	random := rand.New(rand.NewPCG(1, 2))
	people := []string{"A", "B", "C", "D", "E"}

	pick := func() []string {
		var result []string

		for _, person := range people {
			if random.IntN(3) == 0 {
				result = append(result, person)
			}
		}

		return result
	}

	for i := range 500 {
		t.Run(
			strconv.Itoa(i),
			func(t *testing.T) {
				events := make([]Event, random.IntN(12))

				for ix := range events {
					start := random.IntN(MinutesPerDay)

					events[ix] = newTestEvent(
						start,
						start+1+random.IntN(240),
						pick()...,
					)
				}

				duration := random.IntN(MinutesPerDay+20) - 10
				if random.IntN(2) == 0 {
					duration = 1 + random.IntN(2*oneHour)
				}

				request := NewMeetingRequest(
					&ParamsNewMeetingRequest{
						Mandatory:       pick(),
						Optional:        pick(),
						DurationMinutes: duration,
					},
				)

				response := NewMeetingFinder(nil).QueryDetailed(events, request)
				slots := response.Slots

				if request.IsValid() != nil {
					require.Empty(t, slots)

					return
				}

				for ix, slot := range slots {
					require.GreaterOrEqual(t, slot.Duration(), request.Duration())
					require.True(t, WholeDay.ContainsRange(slot))

					if ix > 0 {
						require.Less(t, slots[ix-1].End(), slot.Start())
					}
				}

				allAttendees := NewAttendeeSet(request.AllAttendees()...)

				if !slices.ContainsFunc(events, func(e Event) bool { return e.IsRelevantTo(allAttendees) }) {
					require.Equal(t, []TimeRange{WholeDay}, slots)
				}

				mandatory := NewAttendeeSet(request.MandatoryAttendees()...)

				for _, slot := range slots {
					for _, event := range events {
						if event.IsRelevantTo(mandatory) {
							require.False(t, slot.Overlaps(event.When()))
						}

						if response.OptionalAttendeesIncluded && event.IsRelevantTo(allAttendees) {
							require.False(t, slot.Overlaps(event.When()))
						}
					}
				}

				withOptional := freeByMinute(events, allAttendees, request.Duration())

				if response.OptionalAttendeesIncluded {
					require.Equal(t, withOptional, slots)

					return
				}

				require.Empty(t, withOptional)
				require.Equal(t,
					freeByMinute(events, mandatory, request.Duration()),
					slots,
				)
			},
		)
	}
}
