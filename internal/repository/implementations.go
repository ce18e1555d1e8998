package repository

import (
	"time"

	"github.com/coursechat/backend/internal/models"
	"gorm.io/gorm"
)

// RepositoryManager bundles all repositories behind one constructor
type RepositoryManager struct {
	Course   models.CourseRepository
	QueryLog models.QueryLogRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		Course:   NewCourseRepository(db),
		QueryLog: NewQueryLogRepository(db),
	}
}

// CourseRepositoryImpl implements CourseRepository
type CourseRepositoryImpl struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) models.CourseRepository {
	return &CourseRepositoryImpl{db: db}
}

func (r *CourseRepositoryImpl) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *CourseRepositoryImpl) GetByTitle(title string) (*models.Course, error) {
	var course models.Course
	err := r.db.Where("title = ?", title).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepositoryImpl) GetActive() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("is_active = ?", true).
		Order("title ASC").
		Find(&courses).Error
	return courses, err
}

// TitlesInOrder returns active course titles in catalog order (title ASC).
// Analytics responses must report titles in exactly this order.
func (r *CourseRepositoryImpl) TitlesInOrder() ([]string, error) {
	var titles []string
	err := r.db.Model(&models.Course{}).
		Where("is_active = ?", true).
		Order("title ASC").
		Pluck("title", &titles).Error
	return titles, err
}

func (r *CourseRepositoryImpl) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Course{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *CourseRepositoryImpl) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

func (r *CourseRepositoryImpl) Delete(id uint) error {
	return r.db.Delete(&models.Course{}, id).Error
}

// QueryLogRepositoryImpl implements QueryLogRepository
type QueryLogRepositoryImpl struct {
	db *gorm.DB
}

func NewQueryLogRepository(db *gorm.DB) models.QueryLogRepository {
	return &QueryLogRepositoryImpl{db: db}
}

func (r *QueryLogRepositoryImpl) Create(log *models.QueryLog) error {
	if log.AskedAt.IsZero() {
		log.AskedAt = time.Now()
	}
	return r.db.Create(log).Error
}

func (r *QueryLogRepositoryImpl) GetBySession(sessionID string) ([]models.QueryLog, error) {
	var logs []models.QueryLog
	err := r.db.Where("session_id = ?", sessionID).
		Order("asked_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *QueryLogRepositoryImpl) GetRecent(limit int) ([]models.QueryLog, error) {
	var logs []models.QueryLog
	err := r.db.Order("asked_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
