package analytics

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Aggregator provides generic database aggregation helpers
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates a new aggregator
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Aggregate runs a grouped aggregation and scans the rows into dest,
// which must be a pointer to a slice of structs or maps.
func (a *Aggregator) Aggregate(ctx context.Context, query AggregateQuery, dest interface{}) error {
	selectParts := make([]string, 0, len(query.GroupBy)+len(query.Aggregates))
	selectParts = append(selectParts, query.GroupBy...)
	for _, agg := range query.Aggregates {
		selectParts = append(selectParts, fmt.Sprintf("%s AS %s", agg.Expr, agg.Alias))
	}

	db := a.filtered(ctx, query.Table, query.Filters, query.DateRange).
		Select(strings.Join(selectParts, ", "))

	if len(query.GroupBy) > 0 {
		db = db.Group(strings.Join(query.GroupBy, ", "))
	}
	for _, order := range query.OrderBy {
		db = db.Order(order)
	}
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	if err := db.Scan(dest).Error; err != nil {
		return fmt.Errorf("aggregate query on %s failed: %w", query.Table, err)
	}
	return nil
}

// Count performs a COUNT(*) with filters
func (a *Aggregator) Count(ctx context.Context, table string, filters []Filter, dateRange *DateRange) (int64, error) {
	var count int64
	if err := a.filtered(ctx, table, filters, dateRange).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count query on %s failed: %w", table, err)
	}
	return count, nil
}

// SumInt sums an integer column, treating an empty set as 0
func (a *Aggregator) SumInt(ctx context.Context, table, column string, filters []Filter, dateRange *DateRange) (int64, error) {
	var result struct {
		Total int64
	}
	err := a.filtered(ctx, table, filters, dateRange).
		Select(fmt.Sprintf("COALESCE(SUM(%s), 0) AS total", column)).
		Scan(&result).Error
	if err != nil {
		return 0, fmt.Errorf("sum query on %s failed: %w", table, err)
	}
	return result.Total, nil
}

func (a *Aggregator) filtered(ctx context.Context, table string, filters []Filter, dateRange *DateRange) *gorm.DB {
	db := a.db.WithContext(ctx).Table(table)

	for _, f := range filters {
		if strings.Contains(f.Cond, "?") || len(f.Args) == 0 {
			db = db.Where(f.Cond, f.Args...)
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", f.Cond), f.Args...)
		}
	}

	if dateRange != nil {
		db = db.Where(fmt.Sprintf("%s >= ? AND %s < ?", dateRange.Field, dateRange.Field),
			dateRange.Start, dateRange.End)
	}

	return db
}
