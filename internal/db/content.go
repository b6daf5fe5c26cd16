package db

import (
	"time"

	"gorm.io/datatypes"
)

// ProjectLinks maps a link name (website, github, demo, ...) to its URL.
type ProjectLinks map[string]string

// Project 定义了作品集中的项目。
type Project struct {
	ID           uint                             `gorm:"primaryKey" json:"id"`
	Title        string                           `gorm:"size:200;not null" json:"title"`
	Description  string                           `gorm:"type:text" json:"description"`
	Category     string                           `gorm:"size:100;not null;index" json:"category"`
	Technologies []string                         `gorm:"serializer:json" json:"technologies"`
	Thumbnail    *string                          `gorm:"size:512" json:"thumbnail,omitempty"`
	Links        datatypes.JSONType[ProjectLinks] `json:"links"`
	CreatedAt    time.Time                        `json:"created_at"`
	UpdatedAt    time.Time                        `json:"updated_at"`
}

// LinkMap returns the project's links, never nil.
func (p Project) LinkMap() ProjectLinks {
	links := p.Links.Data()
	if links == nil {
		return ProjectLinks{}
	}
	return links
}

// Skill 定义了技能条目，Proficiency 取值 0-100。
type Skill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	Proficiency int       `gorm:"not null;default:0" json:"proficiency"`
	Icon        string    `gorm:"size:32" json:"icon,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResumeEntry is a single timeline item. Date is free text such as "July 2023 - Present".
type ResumeEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"size:50;not null;index" json:"type"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Date        string    `gorm:"size:100" json:"date"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:50" json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName keeps the singular table name used by the site.
func (ResumeEntry) TableName() string {
	return "resume"
}

// Blog 定义了博客文章，Slug 唯一。
type Blog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Content   string    `gorm:"type:text" json:"content"`
	Thumbnail *string   `gorm:"size:512" json:"thumbnail,omitempty"`
	Tags      []string  `gorm:"serializer:json" json:"tags"`
	Published bool      `gorm:"index" json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
