package meetingfinder

import "slices"

// busyIntervals returns the sorted, disjoint union of the time ranges
// of the events relevant to the attendees, clipped to the day.
func busyIntervals(events []Event, attendees AttendeeSet) []TimeRange {
	relevant := make([]TimeRange, 0, len(events))

	for _, event := range events {
		if !event.IsRelevantTo(attendees) {
			continue
		}

		clipped, ok := event.when.clip(WholeDay)
		if !ok {
			continue
		}

		relevant = append(relevant, clipped)
	}

	slices.SortStableFunc(relevant, ByStart)

	return mergeSorted(relevant)
}

// mergeSorted expects ranges sorted by start.
// Overlapping or touching ranges are merged.
func mergeSorted(sorted []TimeRange) []TimeRange {
	if len(sorted) == 0 {
		return nil
	}

	result := make([]TimeRange, 0, len(sorted))

	currentStart := sorted[0].start
	currentEnd := sorted[0].End()

	for _, busy := range sorted[1:] {
		if busy.start <= currentEnd {
			currentEnd = max(currentEnd, busy.End())

			continue
		}

		result = append(
			result,
			mustTimeRange(currentStart, currentEnd),
		)

		currentStart = busy.start
		currentEnd = busy.End()
	}

	return append(
		result,
		mustTimeRange(currentStart, currentEnd),
	)
}

// freeWindows walks the merged busy intervals against the day
// and keeps the gaps of at least minDuration minutes.
func freeWindows(busyMerged []TimeRange, minDuration int) []TimeRange {
	result := make([]TimeRange, 0, len(busyMerged)+1)

	currentStart := WholeDay.start
	searchEnd := WholeDay.End()

	for _, busy := range busyMerged {
		if busy.start-currentStart >= minDuration {
			result = append(
				result,
				mustTimeRange(currentStart, busy.start),
			)
		}

		currentStart = max(currentStart, busy.End())
	}

	if searchEnd-currentStart >= minDuration {
		result = append(
			result,
			mustTimeRange(currentStart, searchEnd),
		)
	}

	return result
}
