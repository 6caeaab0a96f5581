package dto

import "github.com/noah-isme/edgylearn-api/internal/models"

// CatalogQuery holds the catalog filters. Empty or "all" disables a filter.
type CatalogQuery struct {
	Search   string `query:"search" validate:"max=200"`
	Category string `query:"category" validate:"max=100"`
	Level    string `query:"level" validate:"max=50"`
}

// CatalogStats summarises the filtered catalog.
type CatalogStats struct {
	Count         int     `json:"count"`
	Categories    int     `json:"categories"`
	Enrolled      int     `json:"enrolled"`
	AverageRating float64 `json:"average_rating"`
}

// CatalogResponse is the filtered catalog with the filter options.
type CatalogResponse struct {
	Courses    []models.Course `json:"courses"`
	Categories []string        `json:"categories"`
	Levels     []string        `json:"levels"`
	Stats      CatalogStats    `json:"stats"`
	CacheHit   bool            `json:"cache_hit"`
}
