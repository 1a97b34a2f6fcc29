package reconcile_campaign

import "errors"

var (
	ErrInvalidInput     = errors.New("reconcile_campaign: invalid input data")
	ErrCampaignNotFound = errors.New("reconcile_campaign: campaign not found")

	// ErrNotDispatched is returned for campaigns without any gateway group
	ErrNotDispatched = errors.New("reconcile_campaign: campaign has no gateway group")

	// ErrGatewayUnavailable is returned when any group cannot be read. Nothing is written.
	ErrGatewayUnavailable = errors.New("reconcile_campaign: gateway unavailable")

	ErrInternal = errors.New("reconcile_campaign: internal error")
)
