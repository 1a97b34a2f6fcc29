package campaign

import "errors"

var (
	// ErrCampaignNotFound is returned when no campaign matches the id
	ErrCampaignNotFound = errors.New("campaign.repository: campaign not found")

	ErrBuildQuery = errors.New("campaign.repository: failed to build query")
	ErrExecQuery  = errors.New("campaign.repository: failed to execute query")
	ErrScanRow    = errors.New("campaign.repository: failed to scan row")
)
