package pagination

import "gorm.io/gorm"

// Pagination is the portal's offset paging scheme: 1-based page plus limit.
type Pagination struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20" validate:"gte=1,lte=250"`
}

type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Normalize clamps page and limit into sane bounds.
func (p Pagination) Normalize(defaultLimit, maxLimit int) Pagination {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Apply adds OFFSET/LIMIT to the statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	return stmt.Offset(p.Offset()).Limit(p.Limit)
}

// BuildPageInfo derives page metadata from a total row count.
func BuildPageInfo(p Pagination, total int64) PageInfo {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PageInfo{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
	}
}
