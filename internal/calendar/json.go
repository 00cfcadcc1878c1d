package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/TudorHulban/meetingfinder"
	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
)

type entry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Start     string   `json:"start" valid:"required"`
	Attendees []string `json:"attendees" valid:"required"`

	DurationMinutes int `json:"duration" valid:"required"`
}

type document struct {
	Events []entry `json:"events"`
}

// LoadJSON reads a single day calendar:
//
//	{"events": [{"id": "1", "title": "sync", "start": "10:00", "duration": 60, "attendees": ["a"]}]}
func LoadJSON(r io.Reader) ([]meetingfinder.Event, error) {
	var doc document

	if errDecode := json.NewDecoder(r).Decode(&doc); errDecode != nil {
		return nil,
			fmt.Errorf("decode calendar: %w", errDecode)
	}

	result := make([]meetingfinder.Event, 0, len(doc.Events))

	for ix, item := range doc.Events {
		event, errConvert := item.toEvent()
		if errConvert != nil {
			return nil,
				fmt.Errorf("event %d: %w", ix, errConvert)
		}

		result = append(result, *event)
	}

	return result,
		nil
}

func (e *entry) toEvent() (*meetingfinder.Event, error) {
	if _, errValidation := govalidator.ValidateStruct(e); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Calendar",
				Caller:      "LoadJSON",
				Issue:       errValidation,
			}
	}

	start, errStart := meetingfinder.ParseClock(e.Start)
	if errStart != nil {
		return nil,
			errStart
	}

	// 24:00 is only valid as an end
	if start >= meetingfinder.MinutesPerDay {
		return nil,
			goerrors.ErrInvalidInput{
				Caller:     "LoadJSON",
				InputName:  "start",
				InputValue: e.Start,
				Issue: errors.New(
					"start must be before end of day",
				),
			}
	}

	when, errRange := meetingfinder.NewTimeRangeStartDuration(start, e.DurationMinutes)
	if errRange != nil {
		return nil,
			errRange
	}

	id := e.ID
	if len(id) == 0 {
		id = uuid.New().String()
	}

	return meetingfinder.NewEvent(
		&meetingfinder.ParamsNewEvent{
			ID:        id,
			Title:     e.Title,
			Attendees: e.Attendees,
			When:      when,
		},
	)
}
