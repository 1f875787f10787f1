package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/ai-interviewer/internal/models"
)

type ReportRepository interface {
	Create(report *models.InterviewReport) error
	FindBySessionID(sessionID string) (*models.InterviewReport, error)
	FindRecent(limit int) ([]models.InterviewReport, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create implements ReportRepository.
func (r *reportRepository) Create(report *models.InterviewReport) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// FindBySessionID implements ReportRepository.
func (r *reportRepository) FindBySessionID(sessionID string) (*models.InterviewReport, error) {
	var report models.InterviewReport
	if err := r.db.Where("session_id = ?", sessionID).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("report not found")
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

// FindRecent implements ReportRepository.
func (r *reportRepository) FindRecent(limit int) ([]models.InterviewReport, error) {
	var reports []models.InterviewReport
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find recent reports: %w", err)
	}

	return reports, nil
}
