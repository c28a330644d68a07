package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/amansgnr3001/studenthub/models"
	"github.com/amansgnr3001/studenthub/utils"
)

// PendingDocument is one admin-queue entry: the underlying row plus the
// display fields the dashboard renders.
type PendingDocument struct {
	Variant     string      `json:"variant"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	StudentID   uint        `json:"student_id"`
	FilePath    string      `json:"file_path,omitempty"`
	DocumentURL string      `json:"document_url,omitempty"`
	Status      string      `json:"status"`
	CreateAt    *time.Time  `json:"create_at"`
	Record      interface{} `json:"record"`
}

// SnapshotService builds the full current result set for a stream scope.
// Every call re-runs the underlying queries; nothing is cached, so two calls
// with no intervening writes return equal payloads.
type SnapshotService struct {
	db *gorm.DB
}

func NewSnapshotService(db *gorm.DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// StudentSnapshot returns the wire payload for one student's records of one
// variant, newest first.
func (s *SnapshotService) StudentSnapshot(studentID uint, variant models.Variant) (map[string]interface{}, error) {
	switch variant {
	case models.VariantInternship:
		var rows []models.Internship
		if err := s.ownerQuery(studentID, variant).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].FilePath = utils.AbsoluteDocURL(rows[i].FilePath)
		}
		return studentPayload(variant, len(rows), rows), nil

	case models.VariantPlacement:
		var rows []models.Placement
		if err := s.ownerQuery(studentID, variant).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].FilePath = utils.AbsoluteDocURL(rows[i].FilePath)
		}
		return studentPayload(variant, len(rows), rows), nil

	case models.VariantSkill:
		var rows []models.Skill
		if err := s.ownerQuery(studentID, variant).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].FilePath = utils.AbsoluteDocURL(rows[i].FilePath)
		}
		return studentPayload(variant, len(rows), rows), nil

	case models.VariantCurricular:
		var rows []models.CurricularActivity
		if err := s.ownerQuery(studentID, variant).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].FilePath = utils.AbsoluteDocURL(rows[i].FilePath)
		}
		return studentPayload(variant, len(rows), rows), nil

	case models.VariantExtracurricular:
		var rows []models.ExtracurricularActivity
		if err := s.ownerQuery(studentID, variant).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].FilePath = utils.AbsoluteDocURL(rows[i].FilePath)
		}
		return studentPayload(variant, len(rows), rows), nil

	case models.VariantAcademic:
		var rows []models.AcademicRecord
		if err := s.ownerQuery(studentID, variant).Find(&rows).Error; err != nil {
			return nil, err
		}
		// Historical wire shape: academic streams use count/records keys.
		return map[string]interface{}{
			"message": "Academic records fetched successfully",
			"count":   len(rows),
			"records": rows,
		}, nil
	}

	return nil, models.ErrUnknownVariant
}

func (s *SnapshotService) ownerQuery(studentID uint, variant models.Variant) *gorm.DB {
	return s.db.Table(variant.Table()).
		Where("student_id = ?", studentID).
		Order("create_at DESC")
}

func studentPayload(variant models.Variant, total int, rows interface{}) map[string]interface{} {
	return map[string]interface{}{
		"message":    variant.Title() + " records fetched successfully",
		"totalCount": total,
		"documents":  rows,
	}
}

// PendingSnapshot returns the admin queue: every pending submission across
// the five achievement kinds, newest first, with a per-variant breakdown.
func (s *SnapshotService) PendingSnapshot() (map[string]interface{}, error) {
	docs := make([]PendingDocument, 0)
	breakdown := make(map[string]int, 5)

	for _, variant := range models.ReviewableVariants() {
		count, err := s.appendPending(variant, &docs)
		if err != nil {
			return nil, err
		}
		breakdown[variant.BreakdownKey()] = count
	}

	sort.SliceStable(docs, func(i, j int) bool {
		ti, tj := docs[i].CreateAt, docs[j].CreateAt
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})

	return map[string]interface{}{
		"message":    "Pending documents fetched successfully",
		"totalCount": len(docs),
		"breakdown":  breakdown,
		"documents":  docs,
	}, nil
}

func (s *SnapshotService) appendPending(variant models.Variant, docs *[]PendingDocument) (int, error) {
	q := s.db.Table(variant.Table()).Where("status = ?", models.StatusPending)

	switch variant {
	case models.VariantInternship:
		var rows []models.Internship
		if err := q.Find(&rows).Error; err != nil {
			return 0, err
		}
		for i := range rows {
			*docs = append(*docs, pendingDoc(variant, rows[i].CompanyName, rows[i].StudentID,
				rows[i].FilePath, rows[i].Status, rows[i].CreateAt, rows[i]))
		}
		return len(rows), nil

	case models.VariantPlacement:
		var rows []models.Placement
		if err := q.Find(&rows).Error; err != nil {
			return 0, err
		}
		for i := range rows {
			*docs = append(*docs, pendingDoc(variant, rows[i].CompanyName, rows[i].StudentID,
				rows[i].FilePath, rows[i].Status, rows[i].CreateAt, rows[i]))
		}
		return len(rows), nil

	case models.VariantSkill:
		var rows []models.Skill
		if err := q.Find(&rows).Error; err != nil {
			return 0, err
		}
		for i := range rows {
			*docs = append(*docs, pendingDoc(variant, rows[i].SkillName, rows[i].StudentID,
				rows[i].FilePath, rows[i].Status, rows[i].CreateAt, rows[i]))
		}
		return len(rows), nil

	case models.VariantCurricular:
		var rows []models.CurricularActivity
		if err := q.Find(&rows).Error; err != nil {
			return 0, err
		}
		for i := range rows {
			*docs = append(*docs, pendingDoc(variant, rows[i].ActivityName, rows[i].StudentID,
				rows[i].FilePath, rows[i].Status, rows[i].CreateAt, rows[i]))
		}
		return len(rows), nil

	case models.VariantExtracurricular:
		var rows []models.ExtracurricularActivity
		if err := q.Find(&rows).Error; err != nil {
			return 0, err
		}
		for i := range rows {
			*docs = append(*docs, pendingDoc(variant, rows[i].ActivityName, rows[i].StudentID,
				rows[i].FilePath, rows[i].Status, rows[i].CreateAt, rows[i]))
		}
		return len(rows), nil
	}

	return 0, models.ErrUnknownVariant
}

func pendingDoc(variant models.Variant, subtitle string, studentID uint, filePath, status string, createAt *time.Time, record interface{}) PendingDocument {
	return PendingDocument{
		Variant:     string(variant),
		Title:       variant.Title(),
		Subtitle:    subtitle,
		StudentID:   studentID,
		FilePath:    utils.NormalizeDocPath(filePath),
		DocumentURL: utils.AbsoluteDocURL(filePath),
		Status:      status,
		CreateAt:    createAt,
		Record:      record,
	}
}
