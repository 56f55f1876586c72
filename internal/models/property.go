package models

import "time"

type PropertyLocation struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	ZipCode   string  `json:"zipCode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PropertyFeatures struct {
	Bedrooms      int    `json:"bedrooms"`
	Bathrooms     int    `json:"bathrooms"`
	Area          int    `json:"area"`
	AreaUnit      string `json:"areaUnit"`
	YearBuilt     int    `json:"yearBuilt"`
	ParkingSpaces int    `json:"parkingSpaces"`
	Floors        int    `json:"floors"`
}

type PropertyImage struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

type PropertyAmenity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type PropertyAgent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Title  string `json:"title"`
}

// PropertyDetail is the full record behind a single detail page.
type PropertyDetail struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Type           string            `json:"type"`
	Description    string            `json:"description"`
	Location       PropertyLocation  `json:"location"`
	Price          int               `json:"price"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	Features       PropertyFeatures  `json:"features"`
	Images         []PropertyImage   `json:"images"`
	Amenities      []PropertyAmenity `json:"amenities"`
	Agent          PropertyAgent     `json:"agent"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	IsCertified    bool              `json:"isCertified"`
	VirtualTourURL string            `json:"virtualTourUrl,omitempty"`
	FloorPlanURL   string            `json:"floorPlanUrl,omitempty"`
}

type PropertyDetailRequest struct {
	ID     string `json:"id"`
	Locale string `json:"locale"`
}

type PropertyDetailResponse struct {
	Success  bool           `json:"success"`
	Property PropertyDetail `json:"property"`
	Locale   string         `json:"locale"`
}
