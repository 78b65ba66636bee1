package identityservice

import "time"

// Роли пользователей портала
const (
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// Profile профиль пользователя из IdentityService
type Profile struct {
	UserID      int64      `json:"user_id"`
	FullName    string     `json:"full_name"`
	PhoneNumber string     `json:"phone_number"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Age         *int       `json:"age,omitempty"` // самодекларированный возраст, если нет даты рождения
	Role        string     `json:"role"`
}

// IsStaff проверяет, что пользователь имеет права сотрудника
func (p *Profile) IsStaff() bool {
	return p.Role == RoleStaff || p.Role == RoleAdmin
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
