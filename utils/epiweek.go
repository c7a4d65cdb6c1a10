package utils

import "time"

// Epiweek - CDC epidemiological week identifier for a day, year*100+week,
// approximated with the ISO calendar week.
func Epiweek(t time.Time) int {
	year, week := t.ISOWeek()
	return year*100 + week
}

// EpiweeksBack - the last n epiweeks ending at now, oldest first.
func EpiweeksBack(now time.Time, n int) []int {
	if n < 1 {
		return nil
	}
	weeks := make([]int, 0, n)
	for i := n - 1; i >= 0; i-- {
		weeks = append(weeks, Epiweek(now.AddDate(0, 0, -7*i)))
	}
	return weeks
}
