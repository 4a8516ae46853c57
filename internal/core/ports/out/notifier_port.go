package out

import "context"

// NewAppointmentNotification — данные уведомления о новой записи
type NewAppointmentNotification struct {
	ClientName      string `json:"clientName"`
	ClientEmail     string `json:"clientEmail"`
	ClientPhone     string `json:"clientPhone,omitempty"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"durationMinutes"`
}

// NotifierPort — отправка уведомлений о новых записях
// Fire-and-forget: ошибка отправки логируется и никогда не откатывает бронь
type NotifierPort interface {
	NotifyNewAppointment(ctx context.Context, notification NewAppointmentNotification) error
}
