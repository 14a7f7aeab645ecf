package order

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusOnTheWay  Status = "on_the_way"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentSuccess  PaymentStatus = "Success"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Presentation is the pure display mapping for a status. Unknown values fall
// back to the "Unknown" entry instead of failing.
type Presentation struct {
	Label string
	Icon  string
	Color string
}

var statusPresentation = map[Status]Presentation{
	StatusConfirmed: {Label: "Confirmed", Icon: "clock", Color: "orange"},
	StatusPreparing: {Label: "Preparing", Icon: "clock", Color: "orange"},
	StatusOnTheWay:  {Label: "On the way", Icon: "clock", Color: "orange"},
	StatusDelivered: {Label: "Delivered", Icon: "check-circle", Color: "green"},
	StatusCancelled: {Label: "Cancelled", Icon: "x-circle", Color: "red"},
}

var unknownPresentation = Presentation{Label: "Unknown", Icon: "package", Color: "gray"}

func (s Status) Presentation() Presentation {
	if p, ok := statusPresentation[s]; ok {
		return p
	}
	return unknownPresentation
}

var paymentStatusColor = map[PaymentStatus]string{
	PaymentSuccess:  "green",
	PaymentFailed:   "red",
	PaymentRefunded: "blue",
	PaymentPending:  "yellow",
}

func (p PaymentStatus) Color() string {
	if c, ok := paymentStatusColor[p]; ok {
		return c
	}
	return "gray"
}

// MethodIcon mirrors the payment-method icon lookup: card variants share the
// card icon, UPI gets the phone, anything else falls back to the card.
func MethodIcon(method string) string {
	switch method {
	case "UPI":
		return "smartphone"
	case "Credit Card", "Debit Card":
		return "credit-card"
	default:
		return "credit-card"
	}
}
