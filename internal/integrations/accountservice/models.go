package accountservice

// Role роль учетной записи в системе
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Account учетная запись, выданная сервисом аутентификации
type Account struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// IsAdmin возвращает true, если учетная запись имеет права администратора
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
