package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRole значение роли вне допустимого набора
var ErrInvalidRole = errors.New("domain: invalid user role")

// Customer клиент салона
type Customer struct {
	ID     int64
	UserID int64
	Name   string
	Email  string
	Phone  string
}

// UserRole роль пользователя, проставляется шлюзом авторизации
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleStaff    UserRole = "STAFF"
	RoleAdmin    UserRole = "ADMIN"
	RoleManager  UserRole = "MANAGER"
)

// ParseUserRole разбирает роль без учета регистра
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	switch role {
	case RoleCustomer, RoleStaff, RoleAdmin, RoleManager:
		return role, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// ManagesSalon true для ролей с правами администрирования (каталог, статусы, чужие записи)
func (r UserRole) ManagesSalon() bool {
	return r == RoleAdmin || r == RoleManager
}
