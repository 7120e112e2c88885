package event

// categoryPriority ranks categories for day-cell highlighting.
// Lower number wins. Categories outside the table rank lowest.
var categoryPriority = map[string]int{
	CategoryExam:         1,
	CategoryLesson:       2,
	CategoryConsultation: 3,
	CategoryGroup:        4,
	CategoryOnline:       5,
	CategoryReview:       5,
	CategoryPractice:     5,
}

// unknownPriority is assigned to categories not in the table.
const unknownPriority = 999

// DominantCategory picks the single category that visually represents a day
// with several events. Ties are broken by first occurrence in the input, so
// the result is deterministic for a given event ordering.
// PRE: none
// POST: returns ("", false) for an empty input, otherwise the winning
// category and true; the input slice is not mutated
func DominantCategory(events []Event) (string, bool) {
	if len(events) == 0 {
		return "", false
	}
	best := events[0].Category
	bestRank := rank(best)
	for _, e := range events[1:] {
		if r := rank(e.Category); r < bestRank {
			best = e.Category
			bestRank = r
		}
	}
	return best, true
}

func rank(category string) int {
	if p, ok := categoryPriority[category]; ok {
		return p
	}
	return unknownPriority
}
