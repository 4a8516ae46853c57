package availability_service

import "errors"

// Ошибки валидации отклоняются синхронно на границе вызова,
// конфликт слота отличим от ошибки хранилища: UI по нему перезапрашивает доступность
var (
	ErrInvalidDateRange       = errors.New("end date is before start date")
	ErrUnknownAppointmentType = errors.New("unknown appointment type")
	ErrTypeNotBookableOnline  = errors.New("appointment type is not bookable online")
	ErrSlotUnavailable        = errors.New("slot is no longer available, please reselect")
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
	ErrWeakPassword           = errors.New("password does not meet the policy")
	ErrMissingClient          = errors.New("either clientId or newClient is required")
	ErrClientNotFound         = errors.New("client not found")
)
