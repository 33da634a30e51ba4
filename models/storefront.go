// ════════════════════════════════════════════════════════════
// STOREFRONT MODELS
// File: models/storefront.go
// ════════════════════════════════════════════════════════════

package models

type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor,omitempty"`
}

type Collection struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       *Image `json:"image,omitempty"`
}

// CollectionPage is one page of a collection's products.
type CollectionPage struct {
	Collection Collection `json:"collection"`
	Products   []Product  `json:"products"`
	PageInfo   PageInfo   `json:"pageInfo"`
}

// ProductPage is one page of the full catalog.
type ProductPage struct {
	Products []Product `json:"products"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// CollectionListing is the response of GET /store/collections/:handle.
type CollectionListing struct {
	Collection Collection     `json:"collection"`
	Products   []ProductCard  `json:"products"`
	Filters    FilterGroups   `json:"filters"`
	PriceRange PriceRangeData `json:"priceRange"`
	PageInfo   PageInfo       `json:"pageInfo"`
	Total      int            `json:"total"`
}

type Menu struct {
	ID     string     `json:"id"`
	Handle string     `json:"handle"`
	Title  string     `json:"title"`
	Items  []MenuItem `json:"items"`
}

type MenuItem struct {
	Title string     `json:"title"`
	URL   string     `json:"url"`
	Type  string     `json:"type"`
	Items []MenuItem `json:"items,omitempty"`
}

type ProductSuggestion struct {
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Price  Money  `json:"price"`
	Image  *Image `json:"image,omitempty"`
}

type CollectionSuggestion struct {
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// SearchSuggestions is the predictive-search response.
type SearchSuggestions struct {
	Queries     []string               `json:"queries"`
	Products    []ProductSuggestion    `json:"products"`
	Collections []CollectionSuggestion `json:"collections"`
}
