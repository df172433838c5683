package user

import (
	"time"

	"github.com/google/uuid"
)

// Role groups users for route protection and notification fan-out.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleOperator         Role = "operator"
	RoleSalesperson      Role = "salesperson"
	RoleWarehouseManager Role = "warehouse_manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleSalesperson, RoleWarehouseManager:
		return true
	}
	return false
}

// User is an operator of the shipping service. Users receive incident notifications
// and SLA follow-up activities.
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHashed string
	FullName       string
	Role           Role
	CompanyID      uuid.UUID
	PartnerID      *uuid.UUID
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
