package shoppingcart

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/services/application"
)

func itemKey(applicationID int64) string {
	return strconv.FormatInt(applicationID, 10)
}

func (s *Service) Create(c context.Context, username string) (Cart, error) {
	cart := Cart{
		ID:          s.uuider.Create(),
		User:        username,
		CreatedDate: s.nower.Now(),
	}

	err := s.cartStore.Put(c, cart.ID, cart)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}

	s.logger.Log(c, username, mylog.SeverityInfo, "Created shopping cart %s for %s", cart.ID, username)

	return cart, nil
}

func (s *Service) ensureCart(c context.Context, username string) (Cart, error) {
	var cart Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		existing, found, err := s.GetByUser(c, username)
		if err != nil {
			return err
		}
		if found {
			cart = existing
			return nil
		}
		cart, err = s.Create(c, username)
		return err
	})
	if err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// CheckAndAddApplicationToShoppingCart only acts on applications awaiting payment; a second call updates the line item
func (s *Service) CheckAndAddApplicationToShoppingCart(c context.Context, mainAccount string, app application.Application, lastModifiedBy string) error {
	if app.Status != s.awaitingPaymentStatus {
		return nil
	}

	cart, err := s.ensureCart(c, mainAccount)
	if err != nil {
		return err
	}

	err = s.itemStore.RunInTransaction(c, func(c context.Context) error {
		item, found, err := s.itemStore.Get(c, itemKey(app.ID))
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			item = CartApplication{ApplicationID: app.ID}
		}
		applySnapshot(&item, cart.ID, app, lastModifiedBy, s.nower.Now())

		err = s.itemStore.Put(c, itemKey(app.ID), item)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Log(c, mainAccount, mylog.SeverityInfo, "Application %s is in shopping cart %s", app.Number, cart.ID)

	return nil
}

func applySnapshot(item *CartApplication, cartID string, app application.Application, lastModifiedBy string, now time.Time) {
	item.CartID = cartID
	item.Number = app.Number
	item.Applicant = app.Applicant
	item.Representative = app.Representative
	item.Fees = formatFees(app.Fees)
	item.LastModifiedBy = lastModifiedBy
	item.LastModifiedDate = now
	if app.LastModifiedDate != nil {
		item.LastModifiedDate = *app.LastModifiedDate
	}

	switch app.FoModule {
	case application.FoModuleTrademark:
		item.Type = app.FoModule
		item.IsTrademark, item.IsDesign = true, false
	case application.FoModuleDesign:
		item.Type = app.FoModule
		item.IsTrademark, item.IsDesign = false, true
	case application.FoModuleEService:
		item.Type = app.EServiceName
		item.IsTrademark = app.IPRightType == application.FoModuleTrademark
		item.IsDesign = app.IPRightType == application.FoModuleDesign
	default:
		item.Type = app.FoModule
	}
}

// ModifyApplication takes the application out of the caller's cart and hands it back to the signature platform
func (s *Service) ModifyApplication(c context.Context, username string, applicationID int64, isApplicationDeleted bool, isSignatureDeleted bool) (string, error) {
	mainAccount, err := s.accounts.GetMainAccount(c, username)
	if err != nil {
		return "", err
	}

	cart, found, err := s.GetByUser(c, mainAccount)
	if err != nil {
		return "", err
	}
	if !found {
		return "", myerrors.NewNotFoundError(fmt.Errorf("no shopping cart for %s", mainAccount))
	}

	err = s.itemStore.RunInTransaction(c, func(c context.Context) error {
		item, found, err := s.itemStore.Get(c, itemKey(applicationID))
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("application %d not in shopping cart", applicationID))
		}
		if item.CartID != cart.ID {
			return myerrors.NewSecurityViolationError(fmt.Errorf("application %d is not in the shopping cart of %s", applicationID, mainAccount))
		}

		err = s.itemStore.Delete(c, itemKey(applicationID))
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Log(c, username, mylog.SeverityInfo, "Application %d removed from shopping cart %s (applicationDeleted:%v, signatureDeleted:%v)",
		applicationID, cart.ID, isApplicationDeleted, isSignatureDeleted)

	if isSignatureDeleted {
		return "", nil
	}
	if isApplicationDeleted {
		return s.signatures.DeleteApplication(c, username, applicationID)
	}
	return s.signatures.ModifyApplication(c, username, applicationID)
}

// RemoveApplication is a no-op when the application is not in any cart
func (s *Service) RemoveApplication(c context.Context, applicationID int64) error {
	err := s.itemStore.Delete(c, itemKey(applicationID))
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}

// SyncApplication puts the application in its owner's cart while it awaits payment and takes it out otherwise
func (s *Service) SyncApplication(c context.Context, username string, applicationID int64) error {
	mainAccount, err := s.accounts.GetMainAccount(c, username)
	if err != nil {
		return err
	}

	app, err := s.applications.GetByID(c, applicationID)
	if err != nil {
		return err
	}
	if app.Owner != mainAccount {
		return myerrors.NewSecurityViolationError(fmt.Errorf("application %s does not belong to %s", app.Number, mainAccount))
	}

	if app.Status != s.awaitingPaymentStatus {
		return s.RemoveApplication(c, applicationID)
	}
	return s.CheckAndAddApplicationToShoppingCart(c, mainAccount, app, username)
}
