package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/amansgnr3001/studenthub/models"
	"github.com/amansgnr3001/studenthub/utils"
)

var (
	// ErrReviewNotFound means no row matches (owner, document location).
	ErrReviewNotFound = errors.New("no matching submission")
	// ErrAlreadyReviewed means the target exists but is no longer pending.
	ErrAlreadyReviewed = errors.New("submission already reviewed")
	// ErrEmptyReason rejects a rejection without a usable description.
	ErrEmptyReason = errors.New("rejection reason is required")
	// ErrNotReviewable marks variants that never enter the pending queue.
	ErrNotReviewable = errors.New("variant is not reviewable")
)

// ReviewService applies the single status transition a submission ever gets:
// pending to accepted, or pending to rejected. The transition is guarded in
// the UPDATE itself, so a concurrent or repeated review of the same row can
// never overwrite a resolved status.
type ReviewService struct {
	db  *gorm.DB
	bus *ChangeBus
}

func NewReviewService(db *gorm.DB, bus *ChangeBus) *ReviewService {
	return &ReviewService{db: db, bus: bus}
}

// Accept marks the submission accepted and clears any earlier rejection
// reason. The target is addressed by owner and stored document location,
// since that is all the admin dashboard holds at review time.
func (s *ReviewService) Accept(studentID uint, docPath, variantTag string) (models.Variant, error) {
	return s.transition(studentID, docPath, variantTag, map[string]interface{}{
		"status":           models.StatusAccepted,
		"rejection_reason": "",
	})
}

// Reject marks the submission rejected and stores the reviewer's reason.
func (s *ReviewService) Reject(studentID uint, docPath, variantTag, reason string) (models.Variant, error) {
	if strings.TrimSpace(reason) == "" {
		return "", ErrEmptyReason
	}
	return s.transition(studentID, docPath, variantTag, map[string]interface{}{
		"status":           models.StatusRejected,
		"rejection_reason": reason,
	})
}

func (s *ReviewService) transition(studentID uint, docPath, variantTag string, updates map[string]interface{}) (models.Variant, error) {
	variant, err := models.ParseVariant(variantTag)
	if err != nil {
		return "", err
	}
	if variant.BreakdownKey() == "" {
		return variant, ErrNotReviewable
	}

	path := utils.NormalizeDocPath(docPath)
	now := time.Now()
	updates["update_at"] = &now

	res := s.db.Table(variant.Table()).
		Where("student_id = ? AND file_path = ? AND status = ?", studentID, path, models.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return variant, res.Error
	}
	if res.RowsAffected == 0 {
		// Pending row missing: distinguish never-existed from already-resolved.
		var n int64
		if err := s.db.Table(variant.Table()).
			Where("student_id = ? AND file_path = ?", studentID, path).
			Count(&n).Error; err != nil {
			return variant, err
		}
		if n == 0 {
			return variant, ErrReviewNotFound
		}
		return variant, ErrAlreadyReviewed
	}

	if s.bus != nil {
		s.bus.SubmissionChanged(studentID, variant)
	}
	return variant, nil
}
