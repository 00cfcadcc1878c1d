package meetingfinder

import (
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
)

type MeetingRequest struct {
	mandatory AttendeeSet
	optional  AttendeeSet

	duration int
}

type ParamsNewMeetingRequest struct {
	Mandatory []string
	Optional  []string

	DurationMinutes int
}

// NewMeetingRequest does not validate the duration.
// A request outside [1, MinutesPerDay] produces no slots when queried.
func NewMeetingRequest(params *ParamsNewMeetingRequest) *MeetingRequest {
	return &MeetingRequest{
		mandatory: NewAttendeeSet(params.Mandatory...),
		optional:  NewAttendeeSet(params.Optional...),

		duration: params.DurationMinutes,
	}
}

func (req *MeetingRequest) IsValid() error {
	if req.duration < 1 || req.duration > MinutesPerDay {
		return goerrors.ErrValidation{
			Caller: "IsValid - MeetingRequest",
			Issue: goerrors.ErrInvalidInput{
				InputName:  "duration",
				InputValue: req.duration,
				Issue: fmt.Errorf(
					"duration outside [1, %d]",
					MinutesPerDay,
				),
			},
		}
	}

	return nil
}

func (req *MeetingRequest) Duration() int {
	return req.duration
}

func (req *MeetingRequest) MandatoryAttendees() []string {
	return req.mandatory.Sorted()
}

func (req *MeetingRequest) OptionalAttendees() []string {
	return req.optional.Sorted()
}

// AllAttendees returns mandatory and optional attendees, without duplicates.
func (req *MeetingRequest) AllAttendees() []string {
	return req.mandatory.Union(req.optional).Sorted()
}

// WithOptionalAttendee returns a copy of the request with one more optional attendee.
func (req *MeetingRequest) WithOptionalAttendee(id string) *MeetingRequest {
	return &MeetingRequest{
		mandatory: req.mandatory.Union(nil),
		optional:  req.optional.Union(NewAttendeeSet(id)),

		duration: req.duration,
	}
}
