package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/PayRam/go-search/sqlsafe"
	"gorm.io/gorm"
)

type PaginationConditions struct {
	Limit         *int       `form:"limit"`         // Pagination limit
	Offset        *int       `form:"offset"`        // Pagination offset (optional when using ID-based)
	SortBy        *string    `form:"sortBy"`        // Column to sort by, quoted before use
	Order         *string    `form:"order"`         // ASC or DESC
	GreaterThanID *uint      `form:"greaterThanID"` // For ID-based pagination
	LessThanID    *uint      `form:"lessThanID"`    // For reverse ID-based pagination
	CreatedAfter  *time.Time `form:"createdAfter"`  // Filter records created after this date
	CreatedBefore *time.Time `form:"createdBefore"` // Filter records created before this date
}

// ApplyPaginationConditions adds paging, ID windows and ordering to query. Columns
// are qualified with table so the conditions stay unambiguous across joins.
func ApplyPaginationConditions(query *gorm.DB, table string, conditions PaginationConditions) (*gorm.DB, error) {
	qualified := func(column string) (string, error) {
		t, err := sqlsafe.QuoteIdentifier(table)
		if err != nil {
			return "", err
		}
		c, err := sqlsafe.QuoteIdentifier(column)
		if err != nil {
			return "", err
		}
		return t + "." + c, nil
	}

	if conditions.Offset != nil && *conditions.Offset > 0 {
		query = query.Offset(*conditions.Offset)
	}

	idColumn, err := qualified("id")
	if err != nil {
		return nil, err
	}
	if conditions.GreaterThanID != nil {
		query = query.Where(idColumn+" > ?", *conditions.GreaterThanID)
	}
	if conditions.LessThanID != nil {
		query = query.Where(idColumn+" < ?", *conditions.LessThanID)
	}

	createdColumn, err := qualified("created_at")
	if err != nil {
		return nil, err
	}
	if conditions.CreatedAfter != nil {
		query = query.Where(createdColumn+" > ?", *conditions.CreatedAfter)
	}
	if conditions.CreatedBefore != nil {
		query = query.Where(createdColumn+" < ?", *conditions.CreatedBefore)
	}

	sortBy := "id"
	if conditions.SortBy != nil && *conditions.SortBy != "" {
		sortBy = *conditions.SortBy
	}
	sortColumn, err := qualified(sortBy)
	if err != nil {
		return nil, fmt.Errorf("invalid sort column: %w", err)
	}
	order := "ASC"
	if conditions.Order != nil {
		order = strings.ToUpper(strings.TrimSpace(*conditions.Order))
		if order != "ASC" && order != "DESC" {
			return nil, fmt.Errorf("%w: sort order must be ASC or DESC, got %q", sqlsafe.ErrInvalidArgument, *conditions.Order)
		}
	}
	query = query.Order(sortColumn + " " + order)

	if conditions.Limit != nil && *conditions.Limit > 0 {
		query = query.Limit(*conditions.Limit)
	}

	return query, nil
}
