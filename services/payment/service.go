package payment

import (
	"github.com/MarcGrol/userarea/lib/myasync"
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/lib/mymetrics"
	"github.com/MarcGrol/userarea/lib/mypublisher"
	"github.com/MarcGrol/userarea/lib/mystore"
	"github.com/MarcGrol/userarea/lib/mytime"
)

type Config struct {
	PlatformURL       string
	SearchableColumns []string
}

type Service struct {
	cfg                     Config
	paymentStore            mystore.Store[Payment]
	paymentApplicationStore mystore.Store[PaymentApplication]
	applications            ApplicationService
	carts                   ShoppingCartService
	accounts                AccountService
	client                  PaymentClient
	frontOffice             FrontOfficeNotifier
	publisher               mypublisher.Publisher
	executor                myasync.Executor
	metrics                 *mymetrics.Metrics
	nower                   mytime.Nower
	logger                  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(cfg Config, paymentStore mystore.Store[Payment], paymentApplicationStore mystore.Store[PaymentApplication],
	applications ApplicationService, carts ShoppingCartService, accounts AccountService,
	client PaymentClient, frontOffice FrontOfficeNotifier, publisher mypublisher.Publisher,
	executor myasync.Executor, metrics *mymetrics.Metrics, nower mytime.Nower, logger mylog.Logger) *Service {
	return &Service{
		cfg:                     cfg,
		paymentStore:            paymentStore,
		paymentApplicationStore: paymentApplicationStore,
		applications:            applications,
		carts:                   carts,
		accounts:                accounts,
		client:                  client,
		frontOffice:             frontOffice,
		publisher:               publisher,
		executor:                executor,
		metrics:                 metrics,
		nower:                   nower,
		logger:                  logger,
	}
}
