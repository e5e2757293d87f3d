package models

// BuyerStats summarizes the lead pipeline.
type BuyerStats struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"byStatus"`
	ByCity   map[City]int   `json:"byCity"`
}
