package link_gateway_groups

// Request overrides the configured lookback when LookbackHours > 0
type Request struct {
	LookbackHours int
	DryRun        bool
}

type Link struct {
	GroupID    string `json:"groupId"`
	CampaignID int64  `json:"campaignId"`
}

type Response struct {
	Linked    []Link   `json:"linked"`
	Unmatched []string `json:"unmatched"`
	DryRun    bool     `json:"dryRun"`
}
