package run_scheduled_jobs

type Request struct {
	DryRun bool
}

// Summary reports what one run did
type Summary struct {
	DryRun         bool         `json:"dryRun"`
	Due            int          `json:"due"`
	Dispatched     int          `json:"dispatched"`
	DispatchFailed int          `json:"dispatchFailed"`
	Reconciled     int          `json:"reconciled"`
	Deferred       int          `json:"deferred"`
	Unchanged      int          `json:"unchanged"`
	Failures       []JobFailure `json:"failures"`
}

type JobFailure struct {
	CampaignID int64  `json:"campaignId"`
	Stage      string `json:"stage"` // "dispatch" | "reconcile"
	Error      string `json:"error"`
}
