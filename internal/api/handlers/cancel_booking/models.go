package cancel_booking

// CancelBookingRequest HTTP request model; the body is optional
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}
