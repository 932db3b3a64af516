package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/userarea/services/application"
	"github.com/MarcGrol/userarea/services/shoppingcart"
)

//go:generate mockgen -source=api.go -package payment -destination api_mock.go PaymentClient FrontOfficeNotifier

type PaymentClient interface {
	CreateTransaction(c context.Context, amount decimal.Decimal, applicationNumbers []string) (string, error)
}

type FrontOfficeNotifier interface {
	NotifyPaymentStatus(c context.Context, payment Payment) error
}

type ApplicationService interface {
	GetByIDAndLock(c context.Context, id int64, username string) (application.Application, error)
	GetApplicationsByIDs(c context.Context, ids []int64) ([]application.Application, error)
	SaveAll(c context.Context, apps []application.Application, username string) error
	UpdateAndReleaseApplicationsLock(c context.Context, apps []application.Application, username string) ([]application.Application, error)
}

type ShoppingCartService interface {
	GetByUser(c context.Context, username string) (shoppingcart.Cart, bool, error)
	GetShoppingCartApplicationsByIDs(c context.Context, ids []int64) ([]shoppingcart.CartApplication, error)
	GetShoppingCartApplicationsByNumbers(c context.Context, numbers []string) ([]shoppingcart.CartApplication, error)
	RemoveApplication(c context.Context, applicationID int64) error
}

type AccountService interface {
	GetMainAccount(c context.Context, username string) (string, error)
}
