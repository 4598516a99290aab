package analytics

import "time"

// AggregateQuery represents a grouped aggregation over one table or join
type AggregateQuery struct {
	Table      string      // Table or JOIN clause
	GroupBy    []string    // GROUP BY expressions, also selected
	Aggregates []Aggregate // Selected aggregate expressions
	Filters    []Filter    // WHERE conditions, ANDed in order
	DateRange  *DateRange  // Half-open date range filter
	OrderBy    []string    // ORDER BY clauses
	Limit      int         // LIMIT (0 = no limit)
}

// Aggregate is a selected expression with its alias, e.g. {"total", "SUM(amount_cents)"}
type Aggregate struct {
	Alias string
	Expr  string
}

// Filter is a WHERE condition. A condition without "?" but with one argument
// is treated as a column name compared for equality.
type Filter struct {
	Cond string
	Args []interface{}
}

// Eq builds an equality filter on column.
func Eq(column string, value interface{}) Filter {
	return Filter{Cond: column, Args: []interface{}{value}}
}

// Where builds a parameterized filter.
func Where(cond string, args ...interface{}) Filter {
	return Filter{Cond: cond, Args: args}
}

// DateRange represents a time period for filtering, [Start, End)
type DateRange struct {
	Start time.Time
	End   time.Time
	Field string // Date field or expression to filter on (e.g., "start_time")
}

// ChartData represents generic chart data format
type ChartData struct {
	Type   string        `json:"type"`   // "line", "bar", "pie", "donut"
	Labels []string      `json:"labels"` // X-axis labels or pie segments
	Data   []ChartSeries `json:"data"`   // Y-axis data series
}

// ChartSeries represents a data series in a chart
type ChartSeries struct {
	Name   string  `json:"name"`
	Values []int64 `json:"values"`
	Color  string  `json:"color,omitempty"`
}

// PieChartData represents pie chart specific data
type PieChartData struct {
	Type   string   `json:"type"` // "pie" or "donut"
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// StatCard represents a summary statistic card
type StatCard struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Change      *int   `json:"change"`       // Percentage change, null without a baseline
	ChangeLabel string `json:"change_label"` // "vs last month"
	Trend       string `json:"trend"`        // "up", "down", "neutral"
}
