package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

// validateRequest checks the form and normalizes the phone number in place
func validateRequest(req *Request) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	req.CustomerPhone = domain.NormalizePhone(req.CustomerPhone)
	if !domain.IsValidMobile(req.CustomerPhone) {
		return fmt.Errorf("%w: phone must be a 010XXXXXXXX mobile number", ErrInvalidInput)
	}

	if req.CustomerEmail != nil {
		email := strings.TrimSpace(*req.CustomerEmail)
		if email == "" {
			req.CustomerEmail = nil
		} else if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: invalid email", ErrInvalidInput)
		} else {
			req.CustomerEmail = &email
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != nil && (*req.DurationMinutes <= 0 || *req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	switch req.Status {
	case "":
		req.Status = domain.StatusPending
	case domain.StatusPending, domain.StatusConfirmed:
	default:
		return fmt.Errorf("%w: initial status must be pending or confirmed", ErrInvalidInput)
	}

	return nil
}
