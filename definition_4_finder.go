package meetingfinder

import (
	"go.uber.org/zap"
)

type MeetingFinder struct {
	log *zap.Logger
}

type ParamsNewMeetingFinder struct {
	Logger *zap.Logger
}

func NewMeetingFinder(params *ParamsNewMeetingFinder) *MeetingFinder {
	logger := zap.NewNop()

	if params != nil && params.Logger != nil {
		logger = params.Logger
	}

	return &MeetingFinder{
		log: logger,
	}
}

type ResponseQuery struct {
	Slots []TimeRange

	// OptionalAttendeesIncluded is false when the slots only suit the mandatory attendees.
	OptionalAttendeesIncluded bool
}

// Query returns the free windows of the day, sorted by start,
// each at least as long as the requested duration.
func (f *MeetingFinder) Query(events []Event, request *MeetingRequest) []TimeRange {
	return f.QueryDetailed(events, request).Slots
}

// QueryDetailed prefers slots suiting mandatory and optional attendees
// and falls back to slots suiting only the mandatory ones.
func (f *MeetingFinder) QueryDetailed(events []Event, request *MeetingRequest) *ResponseQuery {
	if request == nil {
		return &ResponseQuery{
			Slots: []TimeRange{},
		}
	}

	if errValidation := request.IsValid(); errValidation != nil {
		f.log.Debug(
			"invalid request",
			zap.Int("duration", request.duration),
			zap.Error(errValidation),
		)

		return &ResponseQuery{
			Slots: []TimeRange{},
		}
	}

	withOptional := freeWindows(
		busyIntervals(events, request.mandatory.Union(request.optional)),
		request.duration,
	)
	if len(withOptional) > 0 {
		return &ResponseQuery{
			Slots:                     withOptional,
			OptionalAttendeesIncluded: true,
		}
	}

	// same attendee set, second tier would be identical
	if request.optional.Len() == 0 {
		return &ResponseQuery{
			Slots: withOptional,
		}
	}

	f.log.Debug(
		"falling back to mandatory attendees",
		zap.Strings("optional", request.optional.Sorted()),
		zap.Int("duration", request.duration),
	)

	return &ResponseQuery{
		Slots: freeWindows(
			busyIntervals(events, request.mandatory),
			request.duration,
		),
	}
}

// FindMeetingTimes queries without logging.
func FindMeetingTimes(events []Event, request *MeetingRequest) []TimeRange {
	return NewMeetingFinder(nil).Query(events, request)
}
