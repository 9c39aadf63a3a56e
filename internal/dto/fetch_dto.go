package dto

// FetchRequest carries the optional query parameters of the fetch trigger.
// Date overrides "today in KST" for backfilling a specific day.
type FetchRequest struct {
	Date string `form:"date" binding:"omitempty,len=8,numeric"`
}

// FetchResultResponse is the body returned by the fetch trigger for every
// outcome, successful or not. EcosError is non-nil when the policy-rate
// pipeline failed while the exchange-rate pipeline succeeded.
type FetchResultResponse struct {
	Success           bool    `json:"success"`
	Message           string  `json:"message"`
	InsertedCount     int64   `json:"inserted_count"`
	SearchDate        string  `json:"search_date"`
	EcosAPICalled     bool    `json:"ecos_api_called"`
	EcosInsertedCount int64   `json:"ecos_inserted_count"`
	EcosError         *string `json:"ecos_error"`
}
