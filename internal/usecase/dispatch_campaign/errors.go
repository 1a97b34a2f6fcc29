package dispatch_campaign

import "errors"

var (
	ErrInvalidInput     = errors.New("dispatch_campaign: invalid input data")
	ErrCampaignNotFound = errors.New("dispatch_campaign: campaign not found")

	// ErrNoRecipients is returned when no valid, opted-in recipient remains
	ErrNoRecipients = errors.New("dispatch_campaign: no valid recipients")

	// ErrImageUpload is returned when an MMS image cannot be re-hosted on the gateway.
	// Nothing is sent in that case.
	ErrImageUpload = errors.New("dispatch_campaign: image upload failed")

	// ErrGateway is returned when the gateway refuses or fails the batch
	ErrGateway = errors.New("dispatch_campaign: gateway error")

	ErrInternal = errors.New("dispatch_campaign: internal error")
)
