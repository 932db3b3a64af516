package paymentevents

const (
	TopicName            = "payment"
	paymentInitiatedName = TopicName + ".initiated"
	paymentCompletedName = TopicName + ".completed"
)

type PaymentInitiated struct {
	TransactionID      string
	Owner              string
	PaidBy             string
	CartID             string
	ApplicationNumbers []string
	Total              string
}

func (e PaymentInitiated) GetEventTypeName() string {
	return paymentInitiatedName
}

func (e PaymentInitiated) GetAggregateName() string {
	return e.TransactionID
}

type PaymentCompleted struct {
	TransactionID  string
	ConfirmationID string
	Status         string
	ErrorMessage   string
}

func (e PaymentCompleted) GetEventTypeName() string {
	return paymentCompletedName
}

func (e PaymentCompleted) GetAggregateName() string {
	return e.TransactionID
}
