package domain

type AppointmentTypeCode string

const (
	AppointmentTypePremierRdv  AppointmentTypeCode = "premier_rdv"
	AppointmentTypeRemediation AppointmentTypeCode = "remediation"
	AppointmentTypeBilan       AppointmentTypeCode = "bilan"
)

// AppointmentType — справочные данные о виде приема, неизменяемы в рантайме
type AppointmentType struct {
	Code            AppointmentTypeCode `json:"code"`
	Label           string              `json:"label"`
	DurationMinutes int                 `json:"durationMinutes"`
	OnlineBookable  bool                `json:"onlineBookable"`
	Description     string              `json:"description"`
}
