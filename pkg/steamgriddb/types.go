// Package steamgriddb provides a client for the SteamGridDB API.
package steamgriddb

// SearchResult represents a game search result.
type SearchResult struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Types    []string `json:"types"`
	Verified bool     `json:"verified"`
}

// ImageData represents a SteamGridDB image (grid, hero, logo, or icon).
// Results come back ranked by score, so the first candidate is the best one.
type ImageData struct {
	ID        int    `json:"id"`
	Score     int    `json:"score"`
	Style     string `json:"style"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Nsfw      bool   `json:"nsfw"`
	Humor     bool   `json:"humor"`
	Mime      string `json:"mime"`
	Language  string `json:"language"`
	URL       string `json:"url"`
	Thumb     string `json:"thumb"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
}

// ImageFilters narrows image queries.
type ImageFilters struct {
	// Dimensions restricts results to one size, e.g. "600x900" or "920x430".
	Dimensions string
	// ShowNsfw includes images flagged not-safe-for-work.
	ShowNsfw bool
	// ShowHumor includes joke images.
	ShowHumor bool
}

// API response envelopes.
type apiResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

type searchResponse struct {
	apiResponse
	Data []SearchResult `json:"data"`
}

type imageResponse struct {
	apiResponse
	Data []ImageData `json:"data"`
}
