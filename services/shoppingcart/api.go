package shoppingcart

import (
	"context"

	"github.com/MarcGrol/userarea/services/application"
)

//go:generate mockgen -source=api.go -package shoppingcart -destination api_mock.go SignatureService ApplicationReader

type SignatureService interface {
	ModifyApplication(c context.Context, username string, applicationID int64) (string, error)
	DeleteApplication(c context.Context, username string, applicationID int64) (string, error)
}

type AccountService interface {
	GetMainAccount(c context.Context, username string) (string, error)
}

type ApplicationReader interface {
	GetByID(c context.Context, id int64) (application.Application, error)
}
