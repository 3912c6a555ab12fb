package request

// SearchLawyersRequest is filled from query parameters.
type SearchLawyersRequest struct {
	SearchTerm   string   `json:"searchTerm"`
	PracticeArea string   `json:"practiceArea"`
	Court        string   `json:"court"`
	Service      string   `json:"service"`
	MinFee       *float64 `json:"minFee" validate:"omitempty,min=0"`
	MaxFee       *float64 `json:"maxFee" validate:"omitempty,min=0"`
	Page         int      `json:"page"`
	Limit        int      `json:"limit"`
}
