package persistence

import (
	"github.com/sysstock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowed sort columns, shared by the listing queries
var sortableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"price":      true,
}

// applyPaging applies pagination and ordering from a filter. The order
// column is whitelisted so filter input can never inject SQL.
func applyPaging(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := "created_at"
	if sortableColumns[filter.OrderBy] {
		orderBy = filter.OrderBy
	}
	dir := "DESC"
	if filter.OrderDir == "asc" {
		dir = "ASC"
	}
	query = query.Order(orderBy + " " + dir)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
