package recipe

// Recipe is a catalog entry, either user-authored (IsManual) or produced by
// the remote generator.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Tags         []string `json:"tags"`
	Calories     float64  `json:"calories,omitempty"`
	Restrictions []string `json:"restrictions,omitempty"`
	IsManual     bool     `json:"isManual,omitempty"`
}
