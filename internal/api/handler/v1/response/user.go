package response

import "github.com/entrada-events/checkin-api/internal/domain"

type PaginatedUsers struct {
	Data       []domain.User `json:"data"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}
