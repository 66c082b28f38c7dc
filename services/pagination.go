package services

import "github.com/quillhub/quill/models"

// FeedPage is one page of a feed in canonical order.
type FeedPage struct {
	Items      []models.Post `json:"items"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Total      int64         `json:"total"`
}

// clampPage normalizes a 1-based page index against the item count.
// Out-of-range indexes clamp to the nearest valid page instead of erroring;
// an empty result set still has a single (empty) page.
func clampPage(page int, total int64, pageSize int) (int, int) {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}
