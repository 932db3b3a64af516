package payment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/userarea/lib/myasync"
	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/myevents"
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/lib/mymetrics"
	"github.com/MarcGrol/userarea/lib/mypublisher"
	"github.com/MarcGrol/userarea/lib/mystore"
	"github.com/MarcGrol/userarea/lib/mytime"
	"github.com/MarcGrol/userarea/lib/myuuid"
	"github.com/MarcGrol/userarea/services/account"
	"github.com/MarcGrol/userarea/services/application"
	"github.com/MarcGrol/userarea/services/payment/paymentevents"
	"github.com/MarcGrol/userarea/services/shoppingcart"
)

const awaitingPayment = "AwaitingPayment"

var now = mytime.ExampleTime

type fixture struct {
	sut          *Service
	client       *MockPaymentClient
	frontOffice  *MockFrontOfficeNotifier
	publisher    *mypublisher.MockPublisher
	payments     *mystore.InMemoryStore[Payment]
	appStore     *application.InMemoryStore
	carts        *shoppingcart.Service
	applications *application.Service
}

func setup(t *testing.T, ctrl *gomock.Controller) fixture {
	c := context.TODO()
	logger := mylog.New("payment")

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(now).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("cart-1").AnyTimes()

	accountStore, _, err := mystore.NewInMemoryStore[account.Account](c)
	require.NoError(t, err)
	accounts := account.NewService(accountStore, logger)
	require.NoError(t, accounts.Save(c, account.Account{Username: "alice"}))
	require.NoError(t, accounts.Save(c, account.Account{Username: "alice-assistant", ParentUsername: "alice"}))

	appStore := application.NewInMemoryStore()
	applications := application.NewService(appStore, nower, logger)

	cartStore, _, err := mystore.NewInMemoryStore[shoppingcart.Cart](c)
	require.NoError(t, err)
	itemStore, _, err := mystore.NewInMemoryStore[shoppingcart.CartApplication](c)
	require.NoError(t, err)
	carts := shoppingcart.NewService(cartStore, itemStore, accounts, applications, nil, nower, uuider, logger, awaitingPayment)

	payments, _, err := mystore.NewInMemoryStore[Payment](c)
	require.NoError(t, err)
	paymentApplications, _, err := mystore.NewInMemoryStore[PaymentApplication](c)
	require.NoError(t, err)

	client := NewMockPaymentClient(ctrl)
	frontOffice := NewMockFrontOfficeNotifier(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	sut := NewService(Config{
		PlatformURL:       "https://pay.example.com/",
		SearchableColumns: []string{"TransactionID", "ConfirmationID", "ApplicationNumbers", "PaidBy"},
	}, payments, paymentApplications, applications, carts, accounts, client, frontOffice, publisher,
		myasync.InlineExecutor{}, mymetrics.New(), nower, logger)

	return fixture{
		sut:          sut,
		client:       client,
		frontOffice:  frontOffice,
		publisher:    publisher,
		payments:     payments,
		appStore:     appStore,
		carts:        carts,
		applications: applications,
	}
}

func (f fixture) givenInCart(t *testing.T, id int64, number string, fees string) {
	c := context.TODO()
	app := application.Application{
		ID:       id,
		Number:   number,
		Status:   awaitingPayment,
		FoModule: application.FoModuleTrademark,
		Owner:    "alice",
		Fees:     decimal.NewNullDecimal(decimal.RequireFromString(fees)),
	}
	require.NoError(t, f.appStore.Save(c, app, "alice"))
	require.NoError(t, f.carts.CheckAndAddApplicationToShoppingCart(c, "alice", app, "alice"))
}

func (f fixture) givenPayment(t *testing.T, p Payment) {
	require.NoError(t, f.payments.Put(context.TODO(), p.TransactionID, p))
}

func (f fixture) application(t *testing.T, id int64) application.Application {
	app, found, err := f.appStore.Get(context.TODO(), id)
	require.NoError(t, err)
	require.True(t, found)
	return app
}

func TestPaymentLifecycle(t *testing.T) {
	c := context.TODO()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	f := setup(t, ctrl)

	// given
	f.givenInCart(t, 123, "123", "50.00")
	published := []myevents.Event{}
	f.publisher.EXPECT().Publish(gomock.Any(), paymentevents.TopicName, gomock.Any()).
		DoAndReturn(func(c context.Context, topic string, event myevents.Event) error {
			published = append(published, event)
			return nil
		}).Times(2)
	f.client.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), []string{"123"}).Return("tx-1", nil)
	f.frontOffice.EXPECT().NotifyPaymentStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(c context.Context, p Payment) error {
			assert.Equal(t, StatusPaid, p.Status)
			return nil
		})

	// when
	initiation, err := f.sut.InitiatePayment(c, "alice", PaymentDetails{ApplicationNumbers: []string{"123"}})

	// then
	require.NoError(t, err)
	assert.Equal(t, "tx-1", initiation.TransactionID)
	assert.Equal(t, "https://pay.example.com/payments/tx-1", initiation.RedirectURL)
	assert.True(t, f.application(t, 123).IsLockedBy("alice"))

	// when
	err = f.sut.Confirm(c, Callback{TransactionID: "tx-1", ConfirmationID: "conf-1", Status: StatusPaid})

	// then
	require.NoError(t, err)
	assert.False(t, f.application(t, 123).IsLocked())

	// when
	confirmation, err := f.sut.GetConfirmation(c, "tx-1")

	// then
	require.NoError(t, err)
	assert.Equal(t, "conf-1", confirmation.ConfirmationID)
	require.Len(t, confirmation.Applications, 1)
	assert.Equal(t, "123", confirmation.Applications[0].Number)
	assert.Equal(t, application.StatusSubmitted, f.application(t, 123).Status)
	items, err := f.carts.GetShoppingCartApplicationsByIDs(c, []int64{123})
	require.NoError(t, err)
	assert.Empty(t, items)

	require.Len(t, published, 2)
	assert.IsType(t, paymentevents.PaymentInitiated{}, published[0])
	assert.IsType(t, paymentevents.PaymentCompleted{}, published[1])
}

func TestInitiatePayment(t *testing.T) {
	c := context.TODO()

	t.Run("total is exact sum of fees", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		f.givenInCart(t, 1, "A", "200.45")
		f.givenInCart(t, 2, "B", "200.45")
		var total decimal.Decimal
		f.client.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), []string{"A", "B"}).
			DoAndReturn(func(c context.Context, amount decimal.Decimal, numbers []string) (string, error) {
				total = amount
				return "tx-1", nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), paymentevents.TopicName, gomock.Any()).Return(nil)

		// when
		_, err := f.sut.InitiatePayment(c, "alice-assistant", PaymentDetails{ApplicationNumbers: []string{"A", "B", "A"}})

		// then
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("400.90")))
		payment, found, err := f.payments.Get(c, "tx-1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "400.90", payment.Total)
		assert.Equal(t, StatusPending, payment.Status)
		assert.Equal(t, "alice", payment.Owner)
		assert.Equal(t, "alice-assistant", payment.PaidBy)
		assert.Equal(t, "cart-1", payment.CartID)
		assert.Equal(t, "1,2", payment.ApplicationIDs)
		assert.Equal(t, "A,B", payment.ApplicationNumbers)
		assert.True(t, f.application(t, 1).IsLockedBy("alice-assistant"))
	})

	t.Run("nothing left in cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// when
		_, err := f.sut.InitiatePayment(c, "alice", PaymentDetails{ApplicationNumbers: []string{"A"}})

		// then
		assert.True(t, myerrors.IsCompletedByAnotherUser(err))
	})

	t.Run("applications in the cart of another account are refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		f.givenInCart(t, 7, "777", "50.00")

		// when
		_, err := f.sut.InitiatePayment(c, "bob", PaymentDetails{ApplicationNumbers: []string{"777"}})

		// then
		assert.True(t, myerrors.IsSecurityViolation(err))
		assert.False(t, f.application(t, 7).IsLocked())
		payments, err := f.payments.List(c)
		require.NoError(t, err)
		assert.Empty(t, payments)
		items, err := f.carts.GetShoppingCartApplicationsByIDs(c, []int64{7})
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("application locked by other user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		f.givenInCart(t, 1, "A", "10")
		f.givenInCart(t, 2, "B", "10")
		_, err := f.applications.GetByIDAndLock(c, 2, "bob")
		require.NoError(t, err)

		// when
		_, err = f.sut.InitiatePayment(c, "alice", PaymentDetails{ApplicationNumbers: []string{"A", "B"}})

		// then
		assert.True(t, myerrors.IsConflict(err))
		assert.False(t, f.application(t, 1).IsLocked())
		assert.True(t, f.application(t, 2).IsLockedBy("bob"))
	})

	t.Run("payment platform failure keeps locks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		f.givenInCart(t, 1, "A", "10")
		f.client.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", myerrors.NewExternalServiceError(fmt.Errorf("timeout")))

		// when
		_, err := f.sut.InitiatePayment(c, "alice", PaymentDetails{ApplicationNumbers: []string{"A"}})

		// then
		assert.True(t, myerrors.IsExternalServiceError(err))
		assert.True(t, f.application(t, 1).IsLockedBy("alice"))
		payments, err := f.payments.List(c)
		require.NoError(t, err)
		assert.Empty(t, payments)
	})
}

func TestConfirm(t *testing.T) {
	c := context.TODO()

	pending := func(f fixture, t *testing.T) {
		f.givenInCart(t, 1, "A", "10")
		_, err := f.applications.GetByIDAndLock(c, 1, "alice")
		require.NoError(t, err)
		f.givenPayment(t, Payment{TransactionID: "tx-1", Status: StatusPending, Owner: "alice", PaidBy: "alice",
			ApplicationIDs: "1", ApplicationNumbers: "A", Total: "10.00"})
	}

	t.Run("unknown transaction is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// when
		err := f.sut.Confirm(c, Callback{TransactionID: "tx-unknown", Status: StatusPaid})

		// then
		assert.NoError(t, err)
	})

	t.Run("failed payment releases locks without front office", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		pending(f, t)
		f.publisher.EXPECT().Publish(gomock.Any(), paymentevents.TopicName, gomock.Any()).Return(nil)

		// when
		err := f.sut.Confirm(c, Callback{TransactionID: "tx-1", Status: StatusFailed, ErrorMessage: "card declined"})

		// then
		require.NoError(t, err)
		payment, _, _ := f.payments.Get(c, "tx-1")
		assert.Equal(t, StatusFailed, payment.Status)
		assert.Equal(t, "card declined", payment.ErrorMessage)
		assert.False(t, f.application(t, 1).IsLocked())
	})

	t.Run("paid at is used as submission time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		pending(f, t)
		paidAt := now.Add(-time.Minute)
		f.publisher.EXPECT().Publish(gomock.Any(), paymentevents.TopicName, gomock.Any()).Return(nil)
		f.frontOffice.EXPECT().NotifyPaymentStatus(gomock.Any(), gomock.Any()).Return(nil)

		// when
		err := f.sut.Confirm(c, Callback{TransactionID: "tx-1", ConfirmationID: "conf-1", Status: StatusPaid, PaidAt: &paidAt})

		// then
		require.NoError(t, err)
		payment, _, _ := f.payments.Get(c, "tx-1")
		assert.Equal(t, paidAt, payment.SubmissionDateTime)
	})

	t.Run("front office failure falls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		pending(f, t)
		f.publisher.EXPECT().Publish(gomock.Any(), paymentevents.TopicName, gomock.Any()).Return(nil)
		f.frontOffice.EXPECT().NotifyPaymentStatus(gomock.Any(), gomock.Any()).Return(fmt.Errorf("front office down"))

		// when
		err := f.sut.Confirm(c, Callback{TransactionID: "tx-1", ConfirmationID: "conf-1", Status: StatusPaid})

		// then
		require.NoError(t, err)
		payment, _, _ := f.payments.Get(c, "tx-1")
		assert.Equal(t, StatusPaidUpdateFOFailed, payment.Status)
	})

	t.Run("repeated callback does not regress status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		pending(f, t)
		f.publisher.EXPECT().Publish(gomock.Any(), paymentevents.TopicName, gomock.Any()).Return(nil)
		f.frontOffice.EXPECT().NotifyPaymentStatus(gomock.Any(), gomock.Any()).Return(nil)
		require.NoError(t, f.sut.Confirm(c, Callback{TransactionID: "tx-1", ConfirmationID: "conf-1", Status: StatusPaid}))

		// when
		err := f.sut.Confirm(c, Callback{TransactionID: "tx-1", Status: StatusFailed, ErrorMessage: "late"})

		// then
		require.NoError(t, err)
		payment, _, _ := f.payments.Get(c, "tx-1")
		assert.Equal(t, StatusPaid, payment.Status)
		assert.Equal(t, "conf-1", payment.ConfirmationID)
		assert.Empty(t, payment.ErrorMessage)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// when
		err := f.sut.Confirm(c, Callback{TransactionID: "tx-1", Status: "REFUNDED"})

		// then
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})
}

func TestGetConfirmation(t *testing.T) {
	c := context.TODO()

	t.Run("unknown transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := setup(t, ctrl)

		_, err := f.sut.GetConfirmation(c, "tx-unknown")

		assert.True(t, myerrors.IsNotFound(err))
	})

	t.Run("failed transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		f.givenPayment(t, Payment{TransactionID: "tx-1", Status: StatusFailed, ApplicationIDs: "1", ApplicationNumbers: "A"})

		// when
		_, err := f.sut.GetConfirmation(c, "tx-1")

		// then
		assert.True(t, myerrors.IsIllegalState(err))
	})

	t.Run("repeated views are identical", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		f.givenInCart(t, 2, "B", "20")
		f.givenInCart(t, 1, "A", "10")
		f.givenPayment(t, Payment{TransactionID: "tx-1", ConfirmationID: "conf-1", Status: StatusPaidUpdateFOFailed,
			Owner: "alice", PaidBy: "alice", ApplicationIDs: "2,1", ApplicationNumbers: "B,A", Total: "30.00"})

		// when
		first, err := f.sut.GetConfirmation(c, "tx-1")
		require.NoError(t, err)
		second, err := f.sut.GetConfirmation(c, "tx-1")
		require.NoError(t, err)

		// then
		assert.Equal(t, first, second)
		assert.Equal(t, "conf-1", second.ConfirmationID)
		assert.True(t, second.Total.Equal(decimal.RequireFromString("30")))
		require.Len(t, second.Applications, 2)
		assert.Equal(t, "A", second.Applications[0].Number)
		assert.Equal(t, "B", second.Applications[1].Number)
		assert.Equal(t, now, *f.application(t, 1).StatusDate)
	})

	t.Run("application locked by another user after payment is not submitted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		f.givenInCart(t, 8, "H", "10")
		f.givenInCart(t, 9, "I", "20")
		f.givenPayment(t, Payment{TransactionID: "tx-9", ConfirmationID: "conf-9", Status: StatusPaid,
			Owner: "alice", PaidBy: "alice", ApplicationIDs: "8,9", ApplicationNumbers: "H,I", Total: "30.00"})
		_, err := f.appStore.Lock(c, 9, "carol", now)
		require.NoError(t, err)

		// when
		_, err = f.sut.GetConfirmation(c, "tx-9")
		require.NoError(t, err)

		// then
		assert.Equal(t, application.StatusSubmitted, f.application(t, 8).Status)
		locked := f.application(t, 9)
		assert.Equal(t, awaitingPayment, locked.Status)
		assert.True(t, locked.IsLockedBy("carol"))
		left, err := f.carts.GetShoppingCartApplicationsByIDs(c, []int64{8, 9})
		require.NoError(t, err)
		require.Len(t, left, 1)
		assert.Equal(t, int64(9), left[0].ApplicationID)
	})
}

func TestGetInvoice(t *testing.T) {
	c := context.TODO()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	f := setup(t, ctrl)

	// given
	f.givenInCart(t, 1, "A", "10")
	f.givenPayment(t, Payment{TransactionID: "tx-1", ConfirmationID: "conf-1", Status: StatusPaid,
		Owner: "alice", PaidBy: "alice", ApplicationIDs: "1", ApplicationNumbers: "A", Total: "10.00"})
	_, err := f.sut.GetConfirmation(c, "tx-1")
	require.NoError(t, err)

	// when
	invoice, err := f.sut.GetInvoice(c, "tx-1")

	// then
	require.NoError(t, err)
	assert.Equal(t, "alice", invoice.Owner)
	require.Len(t, invoice.Lines, 1)
	assert.Equal(t, "A", invoice.Lines[0].Number)
	assert.Equal(t, application.FoModuleTrademark, invoice.Lines[0].IPRightType)
	assert.Equal(t, application.StatusSubmitted, invoice.Lines[0].Status)
	assert.Equal(t, "10.00", invoice.Lines[0].Fees.Decimal.StringFixed(2))
}

func TestCheckStatus(t *testing.T) {
	c := context.TODO()

	testCases := []struct {
		name          string
		payment       Payment
		expectedValid bool
		expectedCode  string
	}{
		{"pending", Payment{TransactionID: "tx-1", Status: StatusPending}, false, ""},
		{"paid", Payment{TransactionID: "tx-1", Status: StatusPaid}, true, ""},
		{"paid without front office", Payment{TransactionID: "tx-1", Status: StatusPaidUpdateFOFailed}, true, ""},
		{"failed", Payment{TransactionID: "tx-1", Status: StatusFailed, ErrorMessage: "declined"}, false, ErrorCodePaymentFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// setup
			f := setup(t, ctrl)

			// given
			f.givenPayment(t, tc.payment)

			// when
			view, err := f.sut.CheckStatus(c, "tx-1")

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expectedValid, view.IsValid)
			assert.Equal(t, tc.expectedCode, view.ErrorCode)
			assert.Equal(t, tc.payment.ErrorMessage, view.ErrorMessage)
		})
	}

	t.Run("unknown transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := setup(t, ctrl)

		_, err := f.sut.CheckStatus(c, "tx-unknown")

		assert.True(t, myerrors.IsNotFound(err))
	})
}

func TestVerifyAccess(t *testing.T) {
	c := context.TODO()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	f := setup(t, ctrl)

	// given
	f.givenPayment(t, Payment{TransactionID: "tx-1", Status: StatusPaid, Owner: "alice", PaidBy: "alice"})

	// when then
	assert.NoError(t, f.sut.VerifyAccess(c, "alice", "tx-1"))
	assert.NoError(t, f.sut.VerifyAccess(c, "alice-assistant", "tx-1"))
	assert.True(t, myerrors.IsSecurityViolation(f.sut.VerifyAccess(c, "mallory", "tx-1")))
	assert.True(t, myerrors.IsNotFound(f.sut.VerifyAccess(c, "alice", "tx-2")))
}
