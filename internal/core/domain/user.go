package domain

import (
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/json_types"
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID           `json:"id"`
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Email     string              `json:"email"`
	Phone     string              `json:"phone,omitempty"`
	CreatedAt json_types.DateTime `json:"createdAt"`
}

// NewUserInput — данные для создания аккаунта нового пациента
// Пароль хэшируется на стороне хранилища
type NewUserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
