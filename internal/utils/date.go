package utils

import (
	"fmt"
	"time"
)

// StartCurrentDay возвращает ту же дату со временем 00:00, таймзона сохраняется
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает новую дату, где день увеличен на 1, время установлено на 00:00, а таймзона остается прежней
func StartNextDay(t time.Time) time.Time {
	newDate := t.AddDate(0, 0, 1)
	return time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, newDate.Location())
}

// SameDate сравнивает календарные даты двух моментов в таймзоне loc
func SameDate(a, b time.Time, loc *time.Location) bool {
	a = a.In(loc)
	b = b.In(loc)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseDate парсит дату из строки RFC3339, затем пробует дату со временем без таймзоны,
// затем дату без времени; даты без таймзоны интерпретируются в loc
func ParseDate(str string, loc *time.Location) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err != nil {
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, loc)
		if err != nil {
			parsedDate, err = time.ParseInLocation("2006-01-02", str, loc)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return parsedDate, nil
}
