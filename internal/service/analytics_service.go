package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

// ErrInvalidPageView 表示缺少页面路径的浏览记录。
var ErrInvalidPageView = errors.New("page is required")

// PageViewRow is a single analytics row as stored: one page and its view count.
type PageViewRow struct {
	Page  string `json:"page"`
	Views int    `json:"views"`
}

// PageViewTotal is the aggregated view count of one page.
type PageViewTotal struct {
	Page       string `json:"page"`
	TotalViews int    `json:"total_views"`
}

// AggregatePageViews 按页面路径（精确匹配）汇总浏览量，按总量降序排列，总量相同按路径升序。
func AggregatePageViews(rows []PageViewRow) []PageViewTotal {
	totals := make(map[string]int, len(rows))
	for _, row := range rows {
		totals[row.Page] += row.Views
	}

	out := make([]PageViewTotal, 0, len(totals))
	for page, views := range totals {
		out = append(out, PageViewTotal{Page: page, TotalViews: views})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalViews != out[j].TotalViews {
			return out[i].TotalViews > out[j].TotalViews
		}
		return out[i].Page < out[j].Page
	})
	return out
}

// PageView describes one tracked request.
type PageView struct {
	Page      string
	IP        string
	UserAgent string
	At        time.Time
}

// AnalyticsSummary 汇总后台仪表盘展示的浏览数据。
type AnalyticsSummary struct {
	TotalViews     int             `json:"total_views"`
	UniquePages    int             `json:"unique_pages"`
	UniqueVisitors int64           `json:"unique_visitors"`
	Pages          []PageViewTotal `json:"pages"`
}

// AnalyticsService 负责页面浏览的记录、汇总与归档。
type AnalyticsService struct {
	db   *gorm.DB
	salt string
}

// NewAnalyticsService 创建 AnalyticsService。
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb, salt: "portfolio"}
}

// WithSalt sets the salt used when hashing visitor IPs.
func (s *AnalyticsService) WithSalt(salt string) *AnalyticsService {
	if strings.TrimSpace(salt) == "" {
		return s
	}
	s.salt = salt
	return s
}

// HashIP 使用加盐 sha256 处理访客 IP，仅保留前 16 位十六进制字符。
func HashIP(salt, ip string) string {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(salt + ip))
	return hex.EncodeToString(sum[:])[:16]
}

// RecordPageView 写入一条 views=1 的浏览记录。
func (s *AnalyticsService) RecordPageView(ctx context.Context, view PageView) error {
	page := strings.TrimSpace(view.Page)
	if page == "" {
		return ErrInvalidPageView
	}
	at := view.At
	if at.IsZero() {
		at = time.Now()
	}

	userAgent := view.UserAgent
	if len(userAgent) > 512 {
		userAgent = userAgent[:512]
	}

	record := db.AnalyticsRecord{
		Page:      page,
		Views:     1,
		IP:        HashIP(s.salt, view.IP),
		UserAgent: userAgent,
		Timestamp: at.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return eris.Wrap(err, "recording page view")
	}
	return nil
}

// Rows 返回全部浏览记录的 page/views 投影。
func (s *AnalyticsService) Rows(ctx context.Context) ([]PageViewRow, error) {
	var rows []PageViewRow
	if err := s.db.WithContext(ctx).Model(&db.AnalyticsRecord{}).
		Select("page, views").
		Scan(&rows).Error; err != nil {
		return nil, eris.Wrap(err, "loading analytics rows")
	}
	return rows, nil
}

// Summary loads every row and aggregates it for the dashboard.
func (s *AnalyticsService) Summary(ctx context.Context) (AnalyticsSummary, error) {
	var summary AnalyticsSummary

	rows, err := s.Rows(ctx)
	if err != nil {
		return summary, err
	}

	summary.Pages = AggregatePageViews(rows)
	summary.UniquePages = len(summary.Pages)
	for _, p := range summary.Pages {
		summary.TotalViews += p.TotalViews
	}

	if err := s.db.WithContext(ctx).Model(&db.AnalyticsRecord{}).
		Where("ip <> ''").
		Distinct("ip").
		Count(&summary.UniqueVisitors).Error; err != nil {
		return summary, eris.Wrap(err, "counting unique visitors")
	}

	return summary, nil
}

// Rollup 将 before 之前的记录按页面与访客 IP 哈希合并，浏览量求和。
// 页面汇总与独立访客数都不受影响。返回被合并掉的行数。
func (s *AnalyticsService) Rollup(ctx context.Context, before time.Time) (int64, error) {
	var collapsed int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var groups []struct {
			Page  string
			IP    string
			Views int
		}
		if err := tx.Model(&db.AnalyticsRecord{}).
			Select("page, ip, SUM(views) AS views").
			Where("timestamp < ?", before.UTC()).
			Group("page, ip").
			Scan(&groups).Error; err != nil {
			return eris.Wrap(err, "grouping analytics rows")
		}
		if len(groups) == 0 {
			return nil
		}

		deleted := tx.Where("timestamp < ?", before.UTC()).Delete(&db.AnalyticsRecord{})
		if deleted.Error != nil {
			return eris.Wrap(deleted.Error, "deleting rolled-up rows")
		}

		stamp := before.UTC().Add(-time.Second)
		merged := make([]db.AnalyticsRecord, 0, len(groups))
		for _, g := range groups {
			merged = append(merged, db.AnalyticsRecord{Page: g.Page, IP: g.IP, Views: g.Views, Timestamp: stamp})
		}
		if err := tx.Create(&merged).Error; err != nil {
			return eris.Wrap(err, "writing rolled-up rows")
		}

		collapsed = deleted.RowsAffected - int64(len(merged))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return collapsed, nil
}
