package application

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FoModuleTrademark = "trademark"
	FoModuleDesign    = "design"
	FoModuleEService  = "eservice"

	StatusSubmitted = "Submitted"
)

type Application struct {
	ID               int64
	Number           string
	Status           string
	FoModule         string
	IPRightType      string
	EServiceName     string
	Applicant        string
	Representative   string
	Owner            string
	Fees             decimal.NullDecimal
	LockedBy         *string
	LockedDate       *time.Time
	LastModifiedBy   string
	LastModifiedDate *time.Time
	StatusDate       *time.Time
	ApplicationDate  *time.Time
	CreatedDate      time.Time
}

func (a Application) IsLocked() bool {
	return a.LockedBy != nil
}

func (a Application) IsLockedBy(username string) bool {
	return a.LockedBy != nil && *a.LockedBy == username
}
