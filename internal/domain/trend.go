package domain

// Trend is one trending topic for a queried country.
type Trend struct {
	Name        string `json:"name"`
	Context     string `json:"context"`
	Description string `json:"description"`
	Volume      int64  `json:"volume"`
}
