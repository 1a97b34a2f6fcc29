package campaigns

import "errors"

var (
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrNotEditable is returned once a campaign has been handed to the gateway
	ErrNotEditable = errors.New("campaign can no longer be edited")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInternal     = errors.New("service: internal error")
)
