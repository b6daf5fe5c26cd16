package db

import "time"

// AnalyticsRecord 记录一次页面浏览，Rollup 之后一行可能代表多次浏览。
type AnalyticsRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Page      string    `gorm:"size:512;not null;index" json:"page"`
	Views     int       `gorm:"not null;default:1" json:"views"`
	IP        string    `gorm:"size:64" json:"-"`
	UserAgent string    `gorm:"size:512" json:"-"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

// TableName 指定自定义表名。
func (AnalyticsRecord) TableName() string {
	return "analytics"
}
