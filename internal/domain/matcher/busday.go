package matcher

import "time"

// BusinessDayDistance counts the weekdays separating two dates,
// inclusive of both endpoints, minus one, so that the same calendar day
// yields zero. Saturdays and Sundays never count. The result is
// symmetric under swapping the arguments and never negative (two dates
// inside the same weekend collapse to zero).
func BusinessDayDistance(a, b time.Time) int {
	a = midnight(a)
	b = midnight(b)
	if a.After(b) {
		a, b = b, a
	}

	days := 0
	for cur := a; !cur.After(b); cur = cur.AddDate(0, 0, 1) {
		if wd := cur.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}

	if days <= 0 {
		return 0
	}
	return days - 1
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
