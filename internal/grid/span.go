package grid

import "github.com/jcalgo/jcal/internal/calendar"

// Span returns the first day of each of count months to display around
// anchor. Without centering the anchor month comes first; with centering the
// anchor sits in the middle, with the extra month of an even count placed
// before it. Months outside the supported year range are dropped.
func Span(anchor calendar.Date, count int, center bool) []calendar.Date {
	if count < 1 {
		count = 1
	}
	start := anchor.FirstOfMonth()
	if center && count > 1 {
		before := (count-1)/2 + (count-1)%2
		s, err := start.AddMonths(-before)
		if err != nil {
			s = calendar.MustDate(anchor.System(), calendar.MinYear, 1, 1)
		}
		start = s
	}

	months := make([]calendar.Date, 0, count)
	for i := 0; i < count; i++ {
		m, err := start.AddMonths(i)
		if err != nil {
			break
		}
		months = append(months, m)
	}
	return months
}
