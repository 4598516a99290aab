package models

import (
	"time"

	"gorm.io/datatypes"
)

// FinancialConfigKey holds the monthly revenue goal.
const FinancialConfigKey = "financial_config"

// Setting is a key-value row of studio configuration
type Setting struct {
	Key       string         `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb" json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Setting) TableName() string {
	return "settings"
}

// FinancialConfig is the decoded value of the financial_config setting.
// The goal is in whole currency units and is only displayed.
type FinancialConfig struct {
	MonthlyRevenueGoal float64 `json:"monthly_revenue_goal"`
}
