package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	Email            *string
	PositionName     *string
	HireDate         time.Time
	EmploymentStatus EmploymentStatus
	BaseSalary       *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
