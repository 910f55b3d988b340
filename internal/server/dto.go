package server

// ResolveResponse reports how an address string was interpreted and, for
// internal pointers, where it landed.
type ResolveResponse struct {
	Address  string `json:"address"`
	Kind     string `json:"kind"`
	Variant  string `json:"variant"`
	Href     string `json:"href"`
	Location string `json:"location,omitempty"`
	Title    string `json:"title,omitempty"`
}

// PageListItem is a lightweight item in a page listing.
type PageListItem struct {
	Location string   `json:"location"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Kind     string   `json:"kind"`
	Tags     []string `json:"tags,omitempty"`
}

// PageListResponse wraps page listings.
type PageListResponse struct {
	Pages []PageListItem `json:"pages"`
	Total int            `json:"total"`
}

// PageDetail is the full page payload.
type PageDetail struct {
	Location string   `json:"location"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Titles   []string `json:"titles,omitempty"`
	Kind     string   `json:"kind"`
	Tags     []string `json:"tags,omitempty"`
	Body     string   `json:"body"`
	Children []string `json:"children"`
}

// SearchHit is a single search hit in the API response.
type SearchHit struct {
	Location string `json:"location"`
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchHit `json:"results"`
}
