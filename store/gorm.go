package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"outreachly/models"
	"outreachly/utils"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	db            *gorm.DB
	encryptionKey string
}

func NewGormStore(db *gorm.DB, encryptionKey string) *GormStore {
	return &GormStore{db: db, encryptionKey: encryptionKey}
}

func (s *GormStore) DueEnrollments(ctx context.Context, now time.Time) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.db.WithContext(ctx).
		Preload("Contact").
		Preload("Sequence").
		Preload("Sequence.Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Where("status = ? AND next_send_at <= ?", models.EnrollmentStatusActive, now).
		Order("next_send_at ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("fetching due enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *GormStore) AdvanceEnrollment(ctx context.Context, enrollmentID uint, step int, dueAt time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ?", enrollmentID).
		Updates(map[string]interface{}{
			"current_step": step,
			"next_send_at": dueAt,
		}).Error
}

func (s *GormStore) CompleteEnrollment(ctx context.Context, enrollmentID uint, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ?", enrollmentID).
		Updates(map[string]interface{}{
			"status":       models.EnrollmentStatusCompleted,
			"completed_at": at,
			"next_send_at": nil,
		}).Error
}

func (s *GormStore) PauseEnrollment(ctx context.Context, enrollmentID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ?", enrollmentID).
		Update("status", models.EnrollmentStatusPaused).Error
}

func (s *GormStore) AppendEngagement(ctx context.Context, engagement *models.Engagement) error {
	if engagement.EngagedAt.IsZero() {
		engagement.EngagedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(engagement).Error; err != nil {
		return fmt.Errorf("appending engagement: %w", err)
	}
	return nil
}

// EnrollmentEngagements fetches by enrollment id and filters by the step
// number embedded in the metadata payload; there is no step column to
// query against.
func (s *GormStore) EnrollmentEngagements(ctx context.Context, enrollmentID uint, stepNumber int) ([]models.Engagement, error) {
	var engagements []models.Engagement
	err := s.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Find(&engagements).Error
	if err != nil {
		return nil, fmt.Errorf("fetching engagements: %w", err)
	}
	return models.FilterEngagementsByStep(engagements, stepNumber), nil
}

func (s *GormStore) CreateCallTask(ctx context.Context, task *models.CallTask) error {
	if task.Status == "" {
		task.Status = models.CallTaskStatusScheduled
	}
	if task.ScheduledAt.IsZero() {
		task.ScheduledAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("creating call task: %w", err)
	}
	return nil
}

// AddContactScore is a read-modify-write; concurrent webhook deliveries
// for the same contact can race, which is acceptable for a heuristic score.
func (s *GormStore) AddContactScore(ctx context.Context, contactID uint, delta int) error {
	var contact models.Contact
	if err := s.db.WithContext(ctx).First(&contact, contactID).Error; err != nil {
		return fmt.Errorf("fetching contact %d: %w", contactID, err)
	}
	return s.db.WithContext(ctx).
		Model(&contact).
		Update("engagement_score", contact.EngagementScore+delta).Error
}

func (s *GormStore) UserCredentials(ctx context.Context, userID uint) (*models.SmartleadCredentials, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("fetching user %d: %w", userID, err)
	}
	if user.SmartleadAPIKey == "" {
		return nil, ErrCredentialsNotFound
	}

	apiKey, err := utils.Decrypt(s.encryptionKey, user.SmartleadAPIKey)
	if err != nil {
		return nil, fmt.Errorf("decrypting api key for user %d: %w", userID, err)
	}
	return &models.SmartleadCredentials{
		APIKey:         apiKey,
		EmailAccountID: user.SmartleadEmailAccountID,
	}, nil
}
