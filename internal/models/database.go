package models

// GORM models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Course represents one ingested course in the catalog
type Course struct {
	BaseModel
	Title        string     `json:"title" gorm:"unique;not null"`
	CourseLink   string     `json:"course_link"`
	Instructor   string     `json:"instructor"`
	LessonCount  int        `json:"lesson_count" gorm:"default:0"`
	ContentHash  string     `json:"content_hash"`
	LastIngested *time.Time `json:"last_ingested"`
	IngestStatus string     `json:"ingest_status" gorm:"default:'pending';check:ingest_status IN ('pending','ingesting','completed','failed')"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
}

// QueryLog represents query analytics
type QueryLog struct {
	BaseModel
	QueryText      string    `json:"query_text" gorm:"not null"`
	SessionID      string    `json:"session_id"`
	SourcesCount   int       `json:"sources_count" gorm:"default:0"`
	AskedAt        time.Time `json:"asked_at" gorm:"default:NOW()"`
	ResponseTimeMs int       `json:"response_time_ms"`
}

// Database interfaces for repository pattern
type CourseRepository interface {
	Create(course *Course) error
	GetByTitle(title string) (*Course, error)
	GetActive() ([]Course, error)
	TitlesInOrder() ([]string, error)
	Count() (int64, error)
	Update(course *Course) error
	Delete(id uint) error
}

type QueryLogRepository interface {
	Create(log *QueryLog) error
	GetBySession(sessionID string) ([]QueryLog, error)
	GetRecent(limit int) ([]QueryLog, error)
}

// TableName methods for custom table names
func (Course) TableName() string   { return "courses" }
func (QueryLog) TableName() string { return "query_logs" }

// Model validation methods
func (c *Course) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("course title is required")
	}
	validStatuses := map[string]bool{
		"pending":   true,
		"ingesting": true,
		"completed": true,
		"failed":    true,
	}
	if !validStatuses[c.IngestStatus] {
		return fmt.Errorf("invalid ingest status: %s", c.IngestStatus)
	}
	return nil
}

func (q *QueryLog) Validate() error {
	if q.QueryText == "" && q.SessionID == "" {
		return fmt.Errorf("query log needs a query text or a session")
	}
	if q.ResponseTimeMs < 0 {
		return fmt.Errorf("response time cannot be negative")
	}
	return nil
}

// GORM hooks
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	return c.Validate()
}

func (c *Course) BeforeUpdate(tx *gorm.DB) error {
	return c.Validate()
}
