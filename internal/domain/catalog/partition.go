package catalog

// IsSuggested is the partition predicate between regular and suggested courses.
func IsSuggested(c *Course) bool {
	return c != nil && c.Suggestion != nil
}

// HasDetail reports whether the optional detail reference is present.
func HasDetail(c *Course) bool {
	return c != nil && c.Detail != nil
}

// PartitionCourses splits a loaded course set by IsSuggested, preserving order.
// Every input course lands in exactly one of the two outputs.
func PartitionCourses(courses []*Course) (regular, suggested []*Course) {
	regular = make([]*Course, 0, len(courses))
	suggested = make([]*Course, 0)
	for _, c := range courses {
		if c == nil {
			continue
		}
		if IsSuggested(c) {
			suggested = append(suggested, c)
		} else {
			regular = append(regular, c)
		}
	}
	return regular, suggested
}
