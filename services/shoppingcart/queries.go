package shoppingcart

import (
	"cmp"
	"context"
	"slices"

	"github.com/MarcGrol/userarea/lib/myauth"
	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/mystore"
)

func (s *Service) GetByUser(c context.Context, username string) (Cart, bool, error) {
	carts, err := s.cartStore.Query(c, []mystore.Filter{{Field: "User", Compare: "=", Value: username}}, "")
	if err != nil {
		return Cart{}, false, myerrors.NewInternalError(err)
	}
	if len(carts) == 0 {
		return Cart{}, false, nil
	}
	return carts[0], true, nil
}

func (s *Service) GetByID(c context.Context, id string) (Cart, bool, error) {
	cart, found, err := s.cartStore.Get(c, id)
	if err != nil {
		return Cart{}, false, myerrors.NewInternalError(err)
	}
	return cart, found, nil
}

func (s *Service) itemsOfCart(c context.Context, cartID string) ([]CartApplication, error) {
	items, err := s.itemStore.Query(c, []mystore.Filter{{Field: "CartID", Compare: "=", Value: cartID}}, "")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	return items, nil
}

func visibleTo(item CartApplication, roles []string) bool {
	return (item.IsTrademark && slices.Contains(roles, myauth.RoleTrademark)) ||
		(item.IsDesign && slices.Contains(roles, myauth.RoleDesign))
}

// GetApplications lists the line items of the main-account cart that the caller's roles allow to see
func (s *Service) GetApplications(c context.Context, username string, criteria Criteria, roles []string) (Search, error) {
	mainAccount, err := s.accounts.GetMainAccount(c, username)
	if err != nil {
		return Search{}, err
	}

	cart, found, err := s.GetByUser(c, mainAccount)
	if err != nil {
		return Search{}, err
	}
	if !found {
		return Search{Items: []CartApplicationView{}}, nil
	}

	items, err := s.itemsOfCart(c, cart.ID)
	if err != nil {
		return Search{}, err
	}

	visible := []CartApplication{}
	for _, item := range items {
		if visibleTo(item, roles) {
			visible = append(visible, item)
		}
	}

	// store order is not defined
	slices.SortFunc(visible, func(a, b CartApplication) int {
		return cmp.Compare(a.ApplicationID, b.ApplicationID)
	})
	sortApplications(visible, criteria)

	result := Search{
		Items: []CartApplicationView{},
		Total: len(visible),
	}
	for _, item := range paginate(visible, criteria.Page, criteria.PageSize) {
		result.Items = append(result.Items, toView(item))
	}
	return result, nil
}

func (s *Service) GetShoppingCartApplicationsByIDs(c context.Context, ids []int64) ([]CartApplication, error) {
	result := []CartApplication{}
	for _, id := range ids {
		item, found, err := s.itemStore.Get(c, itemKey(id))
		if err != nil {
			return nil, myerrors.NewInternalError(err)
		}
		if found {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *Service) GetShoppingCartApplicationsByNumbers(c context.Context, numbers []string) ([]CartApplication, error) {
	result := []CartApplication{}
	for _, number := range numbers {
		items, err := s.itemStore.Query(c, []mystore.Filter{{Field: "Number", Compare: "=", Value: number}}, "")
		if err != nil {
			return nil, myerrors.NewInternalError(err)
		}
		result = append(result, items...)
	}
	return result, nil
}
