package order

// PlaceOrderRequest is the checkout payload. The items, address and totals
// come from the server-held cart; the client only picks how to pay.
type PlaceOrderRequest struct {
	PaymentMethod string `json:"paymentMethod" example:"UPI"`
}

// PlaceOrderResponse mirrors the remote endpoint's success-flag shape.
type PlaceOrderResponse struct {
	Success bool   `json:"success"`
	Order   *Order `json:"order,omitempty"`
	Error   string `json:"error,omitempty"`
}
