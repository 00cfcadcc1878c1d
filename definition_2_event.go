package meetingfinder

import (
	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

// Event is a busy interval and the attendees it occupies.
type Event struct {
	ID    string
	Title string

	when      TimeRange
	attendees AttendeeSet
}

type ParamsNewEvent struct {
	ID        string
	Title     string
	Attendees []string `valid:"required"`

	When TimeRange
}

func NewEvent(params *ParamsNewEvent) (*Event, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "MeetingFinder",
				Caller:      "NewEvent",
				Issue:       errValidation,
			}
	}

	attendees := NewAttendeeSet(params.Attendees...)
	if attendees.Len() == 0 {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewEvent",
				Issue: goerrors.ErrNilInput{
					InputName: "Attendees",
				},
			}
	}

	return &Event{
			ID:    params.ID,
			Title: params.Title,

			when:      params.When,
			attendees: attendees,
		},
		nil
}

func (e Event) When() TimeRange {
	return e.when
}

func (e Event) Attendees() []string {
	return e.attendees.Sorted()
}

// IsRelevantTo is false for events without attendees.
func (e Event) IsRelevantTo(attendees AttendeeSet) bool {
	return e.attendees.Intersects(attendees)
}
