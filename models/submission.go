package models

import (
	"time"
)

// Review status values. A submission starts pending and is resolved exactly
// once, to accepted or rejected.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

type Internship struct {
	InternshipID    uint       `gorm:"primaryKey;column:internship_id" json:"internship_id"`
	StudentID       uint       `gorm:"column:student_id;index" json:"student_id"`
	CompanyName     string     `gorm:"column:company_name" json:"company_name"`
	Role            string     `gorm:"column:role" json:"role"`
	StartDate       *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate         *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	FilePath        string     `gorm:"column:file_path" json:"file_path,omitempty"`
	Status          string     `gorm:"column:status;default:pending" json:"status"`
	RejectionReason string     `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
}

type Placement struct {
	PlacementID     uint       `gorm:"primaryKey;column:placement_id" json:"placement_id"`
	StudentID       uint       `gorm:"column:student_id;index" json:"student_id"`
	CompanyName     string     `gorm:"column:company_name" json:"company_name"`
	Role            string     `gorm:"column:role" json:"role"`
	PackageLPA      float64    `gorm:"column:package_lpa" json:"package_lpa"`
	FilePath        string     `gorm:"column:file_path" json:"file_path,omitempty"`
	Status          string     `gorm:"column:status;default:pending" json:"status"`
	RejectionReason string     `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
}

type Skill struct {
	SkillID         uint       `gorm:"primaryKey;column:skill_id" json:"skill_id"`
	StudentID       uint       `gorm:"column:student_id;index" json:"student_id"`
	SkillName       string     `gorm:"column:skillname" json:"skillname"`
	Level           string     `gorm:"column:level" json:"level,omitempty"`
	FilePath        string     `gorm:"column:file_path" json:"file_path,omitempty"`
	Status          string     `gorm:"column:status;default:pending" json:"status"`
	RejectionReason string     `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
}

type CurricularActivity struct {
	ActivityID      uint       `gorm:"primaryKey;column:activity_id" json:"activity_id"`
	StudentID       uint       `gorm:"column:student_id;index" json:"student_id"`
	ActivityName    string     `gorm:"column:activity_name" json:"activity_name"`
	Description     string     `gorm:"column:description" json:"description,omitempty"`
	ActivityDate    *time.Time `gorm:"column:activity_date" json:"activity_date,omitempty"`
	FilePath        string     `gorm:"column:file_path" json:"file_path,omitempty"`
	Status          string     `gorm:"column:status;default:pending" json:"status"`
	RejectionReason string     `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
}

type ExtracurricularActivity struct {
	ActivityID      uint       `gorm:"primaryKey;column:activity_id" json:"activity_id"`
	StudentID       uint       `gorm:"column:student_id;index" json:"student_id"`
	ActivityName    string     `gorm:"column:activity_name" json:"activity_name"`
	Description     string     `gorm:"column:description" json:"description,omitempty"`
	ActivityDate    *time.Time `gorm:"column:activity_date" json:"activity_date,omitempty"`
	FilePath        string     `gorm:"column:file_path" json:"file_path,omitempty"`
	Status          string     `gorm:"column:status;default:pending" json:"status"`
	RejectionReason string     `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
}

// AcademicRecord is the semester GPA upload. It never enters the admin
// pending queue, so it carries no review fields.
type AcademicRecord struct {
	RecordID  uint       `gorm:"primaryKey;column:record_id" json:"record_id"`
	StudentID uint       `gorm:"column:student_id;index" json:"student_id"`
	Semester  int        `gorm:"column:semester" json:"semester"`
	SGPA      float64    `gorm:"column:sgpa" json:"sgpa"`
	CGPA      float64    `gorm:"column:cgpa" json:"cgpa"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides
func (Internship) TableName() string {
	return "internships"
}

func (Placement) TableName() string {
	return "placements"
}

func (Skill) TableName() string {
	return "skills"
}

func (CurricularActivity) TableName() string {
	return "curricular_activities"
}

func (ExtracurricularActivity) TableName() string {
	return "extracurricular_activities"
}

func (AcademicRecord) TableName() string {
	return "academic_records"
}
