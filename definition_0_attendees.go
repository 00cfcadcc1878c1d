package meetingfinder

import "slices"

type AttendeeSet map[string]struct{}

func NewAttendeeSet(ids ...string) AttendeeSet {
	result := make(AttendeeSet, len(ids))

	for _, id := range ids {
		if len(id) == 0 {
			continue
		}

		result[id] = struct{}{}
	}

	return result
}

func (set AttendeeSet) Len() int {
	return len(set)
}

func (set AttendeeSet) Contains(id string) bool {
	_, exists := set[id]

	return exists
}

// Intersects iterates the smaller set.
func (set AttendeeSet) Intersects(other AttendeeSet) bool {
	small, large := set, other
	if len(small) > len(large) {
		small, large = large, small
	}

	for id := range small {
		if large.Contains(id) {
			return true
		}
	}

	return false
}

// Union returns a new set, receivers are not modified.
func (set AttendeeSet) Union(other AttendeeSet) AttendeeSet {
	result := make(AttendeeSet, len(set)+len(other))

	for id := range set {
		result[id] = struct{}{}
	}

	for id := range other {
		result[id] = struct{}{}
	}

	return result
}

func (set AttendeeSet) Sorted() []string {
	result := make([]string, 0, len(set))

	for id := range set {
		result = append(result, id)
	}

	slices.Sort(result)

	return result
}
