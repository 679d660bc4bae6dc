package persistence

import (
	"errors"
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortColumns is the set of columns a list may be ordered by
type sortColumns map[string]struct{}

func sortable(columns ...string) sortColumns {
	set := sortColumns{"id": {}, "created_at": {}, "updated_at": {}}
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}

var (
	productCategorySort = sortable("name")
	customerDetailsSort = sortable("gender", "phone", "city", "country")
	shoppingCartSort    = sortable("placed_date", "status", "total_price", "payment_method", "customer_details_id")
	productOrderSort    = sortable("quantity", "total_price", "cart_id")
)

// orderBy is the ORDER BY for a request. Unknown columns sort by id and any
// direction other than desc sorts ascending.
func (s sortColumns) orderBy(column, direction string) clause.OrderByColumn {
	column = strings.TrimSpace(column)
	if _, ok := s[column]; !ok {
		column = "id"
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   strings.EqualFold(strings.TrimSpace(direction), "desc"),
	}
}

// applyPaging orders by a whitelisted column and applies offset/limit
func applyPaging(query *gorm.DB, filter shared.Filter, columns sortColumns) *gorm.DB {
	query = query.Order(columns.orderBy(filter.OrderBy, filter.OrderDir))
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// translateNotFound maps gorm.ErrRecordNotFound to the domain's not-found error
func translateNotFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(entity)
	}
	return err
}

// updateWithVersion writes every column of model when the stored row still has
// the version the aggregate was loaded with. Aggregates bump their version before
// saving, so the expected stored version is version-1.
func updateWithVersion[M any](tx *gorm.DB, model *M, id int64, version int) error {
	result := tx.Model(model).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Where("version = ?", version-1).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Session(&gorm.Session{NewDB: true}).Model(new(M)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrConcurrencyConflict
}

// deleteByID deletes a row by primary key, returning ErrNotFound when nothing was deleted
func deleteByID[M any](tx *gorm.DB, id int64) error {
	result := tx.Delete(new(M), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// existsByID reports whether a row with the given primary key exists
func existsByID[M any](tx *gorm.DB, id int64) (bool, error) {
	var count int64
	if err := tx.Model(new(M)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
