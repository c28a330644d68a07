package models

import (
	"time"
)

type Student struct {
	StudentID      uint       `gorm:"primaryKey;column:student_id" json:"student_id"`
	Name           string     `gorm:"column:name" json:"name"`
	Email          string     `gorm:"column:email;unique" json:"email"`
	Password       string     `gorm:"column:password" json:"-"`
	RegistrationNo string     `gorm:"column:registration_no;unique" json:"registration_no"`
	Department     string     `gorm:"column:department" json:"department"`
	Semester       int        `gorm:"column:semester" json:"semester"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type Faculty struct {
	FacultyID  uint       `gorm:"primaryKey;column:faculty_id" json:"faculty_id"`
	Name       string     `gorm:"column:name" json:"name"`
	Email      string     `gorm:"column:email;unique" json:"email"`
	Password   string     `gorm:"column:password" json:"-"`
	Department string     `gorm:"column:department" json:"department"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Role values carried in JWT claims.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// TableName overrides
func (Student) TableName() string {
	return "students"
}

func (Faculty) TableName() string {
	return "faculties"
}
