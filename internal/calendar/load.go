package calendar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/TudorHulban/meetingfinder"
)

// Load picks the decoder from the file extension.
func Load(path string, day time.Time) ([]meetingfinder.Event, error) {
	f, errOpen := os.Open(path)
	if errOpen != nil {
		return nil,
			fmt.Errorf("open calendar: %w", errOpen)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics", ".ical":
		return LoadICS(f, day)

	case ".json":
		return LoadJSON(f)
	}

	return nil,
		fmt.Errorf("unsupported calendar format %q", filepath.Ext(path))
}
