package shoppingcart

import (
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/lib/mystore"
	"github.com/MarcGrol/userarea/lib/mytime"
	"github.com/MarcGrol/userarea/lib/myuuid"
)

type Service struct {
	cartStore             mystore.Store[Cart]
	itemStore             mystore.Store[CartApplication]
	accounts              AccountService
	applications          ApplicationReader
	signatures            SignatureService
	nower                 mytime.Nower
	uuider                myuuid.UUIDer
	logger                mylog.Logger
	awaitingPaymentStatus string
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(cartStore mystore.Store[Cart], itemStore mystore.Store[CartApplication], accounts AccountService,
	applications ApplicationReader, signatures SignatureService, nower mytime.Nower, uuider myuuid.UUIDer,
	logger mylog.Logger, awaitingPaymentStatus string) *Service {
	return &Service{
		cartStore:             cartStore,
		itemStore:             itemStore,
		accounts:              accounts,
		applications:          applications,
		signatures:            signatures,
		nower:                 nower,
		uuider:                uuider,
		logger:                logger,
		awaitingPaymentStatus: awaitingPaymentStatus,
	}
}
