package insights

import "time"

// ActivityDays is the number of daily buckets in the activity chart.
const ActivityDays = 7

// DayActivity is the commit count of one UTC day.
type DayActivity struct {
	Name    string    `json:"name"` // short weekday, e.g. "Mon"
	Date    time.Time `json:"date"`
	Commits int       `json:"commits"`
}

// Activity buckets records into the last ActivityDays UTC days ending on now, oldest first.
// Records outside those days are not counted.
func Activity(records []CommitRecord, now time.Time) []DayActivity {
	today := truncateDay(now)
	days := make([]DayActivity, ActivityDays)
	index := make(map[time.Time]int, ActivityDays)
	for i := range days {
		d := today.AddDate(0, 0, i-(ActivityDays-1))
		days[i] = DayActivity{Name: d.Format("Mon"), Date: d}
		index[d] = i
	}
	for _, r := range records {
		if i, ok := index[truncateDay(r.Date)]; ok {
			days[i].Commits++
		}
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
