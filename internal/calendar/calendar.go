// Package calendar computes the day windows the week and month views render.
// Weeks start on Monday.
package calendar

import (
	"time"

	"github.com/dunr-app/dunr/internal/plan"
)

// monthGridCells is 6 rows of 7 days, enough for any month layout.
const monthGridCells = 42

// Day is one cell of a month grid.
type Day struct {
	Date       time.Time `json:"date"`
	OtherMonth bool      `json:"otherMonth"`
}

// WeekWindow returns the seven days of the week containing ref, starting on
// Monday.
func WeekWindow(ref time.Time) []time.Time {
	monday := plan.ToDate(ref).AddDate(0, 0, -mondayOffset(ref))

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}

	return days
}

// MonthGrid returns the 42 cells of the month view containing ref. Leading
// and trailing cells from the adjacent months are flagged so the view can
// dim them.
func MonthGrid(ref time.Time) []Day {
	first := plan.Date(ref.Year(), ref.Month(), 1)
	start := first.AddDate(0, 0, -mondayOffset(first))

	cells := make([]Day, monthGridCells)
	for i := range cells {
		date := start.AddDate(0, 0, i)
		cells[i] = Day{
			Date:       date,
			OtherMonth: date.Month() != ref.Month(),
		}
	}

	return cells
}

// mondayOffset is how many days ref lies after the Monday of its week.
func mondayOffset(ref time.Time) int {
	return (int(ref.Weekday()) + 6) % 7
}

// Buckets groups sessions by calendar day. Within a day, sessions keep the
// order they were given in.
type Buckets struct {
	dates  []time.Time
	byDate map[time.Time][]plan.Session
}

// Bucket groups the given sessions by their date.
func Bucket(sessions []plan.Session) *Buckets {
	b := &Buckets{byDate: make(map[time.Time][]plan.Session)}
	for _, s := range sessions {
		date := plan.ToDate(s.Date)
		if _, seen := b.byDate[date]; !seen {
			b.dates = append(b.dates, date)
		}
		b.byDate[date] = append(b.byDate[date], s)
	}

	return b
}

// On returns the sessions scheduled on the given day.
func (b *Buckets) On(date time.Time) []plan.Session {
	return b.byDate[plan.ToDate(date)]
}

// Dates returns the distinct days in first-seen order.
func (b *Buckets) Dates() []time.Time {
	return b.dates
}
