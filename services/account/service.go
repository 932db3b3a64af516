package account

import (
	"context"
	"fmt"

	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/lib/mystore"
)

type Service struct {
	store  mystore.Store[Account]
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Account], logger mylog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// GetMainAccount resolves the username owning carts and payments on behalf of username
func (s *Service) GetMainAccount(c context.Context, username string) (string, error) {
	if username == "" {
		return "", myerrors.NewInvalidInputError(fmt.Errorf("missing username"))
	}

	acc, found, err := s.store.Get(c, username)
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}
	if !found {
		// users without a registered account act for themselves
		return username, nil
	}

	return acc.MainAccount(), nil
}

func (s *Service) Save(c context.Context, acc Account) error {
	if acc.Username == "" {
		return myerrors.NewInvalidInputError(fmt.Errorf("missing username"))
	}
	err := s.store.Put(c, acc.Username, acc)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	s.logger.Log(c, acc.Username, mylog.SeverityInfo, "Account %s stored (main account %s)", acc.Username, acc.MainAccount())
	return nil
}
