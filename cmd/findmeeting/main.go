package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/TudorHulban/meetingfinder"
	"github.com/TudorHulban/meetingfinder/internal/app"
	"github.com/TudorHulban/meetingfinder/internal/calendar"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "findmeeting",
		Usage:  "List the free windows of a day for a meeting.",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "calendar",
				Usage:    "calendar file, .ics or .json",
				EnvVars:  []string{"FINDMEETING_CALENDAR"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "date",
				Usage:   "day to search, YYYY-MM-DD (default today)",
				EnvVars: []string{"FINDMEETING_DATE"},
			},
			&cli.StringFlag{
				Name:    "tz",
				Usage:   "time zone of the day",
				Value:   "UTC",
				EnvVars: []string{"FINDMEETING_TZ"},
			},
			&cli.IntFlag{
				Name:    "duration",
				Usage:   "meeting length in minutes",
				Value:   30,
				EnvVars: []string{"FINDMEETING_DURATION"},
			},
			&cli.StringSliceFlag{
				Name:  "mandatory",
				Usage: "attendee that must be free, repeatable",
			},
			&cli.StringSliceFlag{
				Name:  "optional",
				Usage: "attendee that should be free if possible, repeatable",
			},
			&cli.StringFlag{
				Name:    "format",
				Usage:   "text or json",
				Value:   "text",
				EnvVars: []string{"FINDMEETING_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "env",
				Usage:   "development or production logging",
				Value:   "development",
				EnvVars: []string{"FINDMEETING_ENV"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"FINDMEETING_DEBUG"},
			},
		},
		Action: find,
	}
}

func find(c *cli.Context) error {
	logger, errLogger := app.NewLogger(c.String("env"), c.Bool("debug"))
	if errLogger != nil {
		return fmt.Errorf("failed to create logger: %w", errLogger)
	}
	defer logger.Sync() //nolint:errcheck

	day, errDay := parseDay(c.String("date"), c.String("tz"))
	if errDay != nil {
		return errDay
	}

	events, errLoad := calendar.Load(c.String("calendar"), day)
	if errLoad != nil {
		return fmt.Errorf("failed to load calendar: %w", errLoad)
	}

	logger.Info(
		"calendar loaded",
		zap.String("file", c.String("calendar")),
		zap.String("day", day.Format(time.DateOnly)),
		zap.Int("events", len(events)),
	)

	finder := meetingfinder.NewMeetingFinder(
		&meetingfinder.ParamsNewMeetingFinder{
			Logger: logger,
		},
	)

	response := finder.QueryDetailed(
		events,
		meetingfinder.NewMeetingRequest(
			&meetingfinder.ParamsNewMeetingRequest{
				Mandatory:       c.StringSlice("mandatory"),
				Optional:        c.StringSlice("optional"),
				DurationMinutes: c.Int("duration"),
			},
		),
	)

	logger.Info(
		"search done",
		zap.Int("slots", len(response.Slots)),
		zap.Bool("optional_included", response.OptionalAttendeesIncluded),
	)

	return render(c.App.Writer, c.String("format"), day, response)
}

func parseDay(date, tz string) (time.Time, error) {
	loc, errLoc := time.LoadLocation(tz)
	if errLoc != nil {
		return time.Time{},
			fmt.Errorf("invalid timezone '%s': %w", tz, errLoc)
	}

	if len(date) == 0 {
		return time.Now().In(loc),
			nil
	}

	day, errParse := time.ParseInLocation(time.DateOnly, date, loc)
	if errParse != nil {
		return time.Time{},
			fmt.Errorf("invalid date '%s': %w", date, errParse)
	}

	return day,
		nil
}

type slotJSON struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration"`
}

type resultJSON struct {
	Day                       string     `json:"day"`
	Slots                     []slotJSON `json:"slots"`
	OptionalAttendeesIncluded bool       `json:"optional_attendees_included"`
}

func render(out io.Writer, format string, day time.Time, response *meetingfinder.ResponseQuery) error {
	switch format {
	case "json":
		result := resultJSON{
			Day:                       day.Format(time.DateOnly),
			Slots:                     make([]slotJSON, 0, len(response.Slots)),
			OptionalAttendeesIncluded: response.OptionalAttendeesIncluded,
		}

		for _, slot := range response.Slots {
			result.Slots = append(
				result.Slots,
				slotJSON{
					Start:           meetingfinder.FormatClock(slot.Start()),
					End:             meetingfinder.FormatClock(slot.End()),
					DurationMinutes: slot.Duration(),
				},
			)
		}

		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(result)

	case "text":
		for _, slot := range response.Slots {
			if _, errWrite := fmt.Fprintln(out, slot.Clock()); errWrite != nil {
				return errWrite
			}
		}

		return nil
	}

	return fmt.Errorf("unsupported format %q", format)
}
