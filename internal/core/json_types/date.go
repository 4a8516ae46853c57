package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Location — таймзона кабинета, используется при парсинге и форматировании дат
// Устанавливается один раз при загрузке конфигурации
var Location *time.Location = time.UTC

func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	// Если не удалось, пробуем дату со временем, но без таймзоны
	// По дефолту ставим таймзону кабинета
	if err != nil {
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, Location)
		if err != nil {
			// Если не удалось, пробуем как дату без времени
			parsedDate, err = time.ParseInLocation("2006-01-02", str, Location)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return parsedDate, nil
}

type Date struct {
	Date time.Time
}

func NewDate(t time.Time) Date {
	return Date{Date: t}
}

func (t *Date) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.In(Location).Format("2006-01-02"))
}

// Key возвращает дату в виде строки YYYY-MM-DD в таймзоне кабинета
// Используется как ключ для множеств дат (праздники, блокировки, кэш)
func (t Date) Key() string {
	return t.Date.In(Location).Format("2006-01-02")
}

type DateTime struct {
	Date time.Time
}

func NewDateTime(t time.Time) DateTime {
	// Внутри храним только UTC, локальное время вычисляется при форматировании
	return DateTime{Date: t.UTC()}
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = DateTime{Date: parsedDate.UTC()}
	return nil
}

// MarshalJSON форматирует метку времени в таймзоне кабинета
// с явным числовым смещением, суффикс Z не используется
func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.In(Location).Format("2006-01-02T15:04:05-07:00"))
}
