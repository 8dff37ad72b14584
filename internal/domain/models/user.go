package models

// роли из таблицы user_roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет пользователя
type User struct {
	ID       int64
	Email    string
	PassHash []byte
}
