package dto

// AdminActionRequest names the target row for an admin mutation. The shared
// key may arrive in the same body; the admin middleware consumes it.
type AdminActionRequest struct {
	Key string `json:"key"`
	ID  string `json:"id"`
}

// OKResponse is the generic success shape.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ApproveCourierResponse returns the generated PIN for out-of-band handover.
type ApproveCourierResponse struct {
	OK  bool   `json:"ok"`
	PIN string `json:"pin"`
}

// AdminOrdersResponse lists orders pending phone verification.
type AdminOrdersResponse struct {
	OK     bool            `json:"ok"`
	Orders []OrderResponse `json:"orders"`
}

// AdminCouriersResponse lists courier applications.
type AdminCouriersResponse struct {
	OK       bool                     `json:"ok"`
	Requests []CourierRequestResponse `json:"requests"`
}
