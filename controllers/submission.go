package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amansgnr3001/studenthub/config"
	"github.com/amansgnr3001/studenthub/middleware"
	"github.com/amansgnr3001/studenthub/models"
	"github.com/amansgnr3001/studenthub/utils"
)

const maxAttachmentSize = 5 * 1024 * 1024 // 5MB

// saveAttachment stores the optional supporting document for a submission.
// It returns the normalized public reference ("/uploads/...") and the
// on-disk path so a failed database insert can remove the file again.
func saveAttachment(c *gin.Context, studentID uint) (string, string, error) {
	file, err := c.FormFile("document")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("invalid upload: %w", err)
	}

	if file.Size > maxAttachmentSize {
		return "", "", errors.New("document exceeds the 5MB size limit")
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return "", "", errors.New("only PDF documents are accepted")
	}

	dir, err := utils.EnsureStudentFolder(studentID)
	if err != nil {
		return "", "", errors.New("failed to prepare upload directory")
	}

	name := utils.StoredFilename(file.Filename)
	fullPath := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		return "", "", errors.New("failed to save document")
	}

	relPath := utils.NormalizeDocPath(fmt.Sprintf("/uploads/student_%d/%s", studentID, name))
	return relPath, fullPath, nil
}

// discardAttachment removes a stored file after a failed insert so no
// orphaned attachment stays on disk.
func discardAttachment(fullPath string) {
	if fullPath == "" {
		return
	}
	_ = os.Remove(fullPath)
}

// CreateInternship records an internship submission for the caller
func CreateInternship(c *gin.Context) {
	studentID, _ := middleware.CurrentUserID(c)

	companyName := utils.SanitizeInput(c.PostForm("company_name"))
	role := utils.SanitizeInput(c.PostForm("role"))
	if companyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_name is required"})
		return
	}

	startDate, err := parseDateField(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	endDate, err := parseDateField(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	relPath, fullPath, err := saveAttachment(c, studentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	row := models.Internship{
		StudentID:   studentID,
		CompanyName: companyName,
		Role:        role,
		StartDate:   startDate,
		EndDate:     endDate,
		FilePath:    relPath,
		Status:      models.StatusPending,
		CreateAt:    &now,
		UpdateAt:    &now,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		discardAttachment(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save internship"})
		return
	}

	bus.SubmissionChanged(studentID, models.VariantInternship)
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Internship submitted for review",
		"internship": row,
	})
}

// CreatePlacement records a placement submission for the caller
func CreatePlacement(c *gin.Context) {
	studentID, _ := middleware.CurrentUserID(c)

	companyName := utils.SanitizeInput(c.PostForm("company_name"))
	if companyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_name is required"})
		return
	}

	packageLPA, err := parseFloatField(c, "package_lpa")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	relPath, fullPath, err := saveAttachment(c, studentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	row := models.Placement{
		StudentID:   studentID,
		CompanyName: companyName,
		Role:        utils.SanitizeInput(c.PostForm("role")),
		PackageLPA:  packageLPA,
		FilePath:    relPath,
		Status:      models.StatusPending,
		CreateAt:    &now,
		UpdateAt:    &now,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		discardAttachment(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save placement"})
		return
	}

	bus.SubmissionChanged(studentID, models.VariantPlacement)
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Placement submitted for review",
		"placement": row,
	})
}

// CreateSkill records a skill submission for the caller
func CreateSkill(c *gin.Context) {
	studentID, _ := middleware.CurrentUserID(c)

	skillName := utils.SanitizeInput(c.PostForm("skillname"))
	if skillName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skillname is required"})
		return
	}

	relPath, fullPath, err := saveAttachment(c, studentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	row := models.Skill{
		StudentID: studentID,
		SkillName: skillName,
		Level:     utils.SanitizeInput(c.PostForm("level")),
		FilePath:  relPath,
		Status:    models.StatusPending,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		discardAttachment(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save skill"})
		return
	}

	bus.SubmissionChanged(studentID, models.VariantSkill)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Skill submitted for review",
		"skill":   row,
	})
}

// CreateCurricularActivity records a curricular activity submission
func CreateCurricularActivity(c *gin.Context) {
	createActivity(c, models.VariantCurricular)
}

// CreateExtracurricularActivity records an extracurricular activity submission
func CreateExtracurricularActivity(c *gin.Context) {
	createActivity(c, models.VariantExtracurricular)
}

func createActivity(c *gin.Context, variant models.Variant) {
	studentID, _ := middleware.CurrentUserID(c)

	activityName := utils.SanitizeInput(c.PostForm("activity_name"))
	if activityName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity_name is required"})
		return
	}

	activityDate, err := parseDateField(c, "activity_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	relPath, fullPath, err := saveAttachment(c, studentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	description := utils.SanitizeInput(c.PostForm("description"))

	var insertErr error
	var payload interface{}
	if variant == models.VariantCurricular {
		row := models.CurricularActivity{
			StudentID:    studentID,
			ActivityName: activityName,
			Description:  description,
			ActivityDate: activityDate,
			FilePath:     relPath,
			Status:       models.StatusPending,
			CreateAt:     &now,
			UpdateAt:     &now,
		}
		insertErr = config.DB.Create(&row).Error
		payload = row
	} else {
		row := models.ExtracurricularActivity{
			StudentID:    studentID,
			ActivityName: activityName,
			Description:  description,
			ActivityDate: activityDate,
			FilePath:     relPath,
			Status:       models.StatusPending,
			CreateAt:     &now,
			UpdateAt:     &now,
		}
		insertErr = config.DB.Create(&row).Error
		payload = row
	}
	if insertErr != nil {
		discardAttachment(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save activity"})
		return
	}

	bus.SubmissionChanged(studentID, variant)
	c.JSON(http.StatusCreated, gin.H{
		"message":  variant.Title() + " submitted for review",
		"activity": payload,
	})
}

// UploadAcademicRecord stores one semester GPA record for the caller
func UploadAcademicRecord(c *gin.Context) {
	studentID, _ := middleware.CurrentUserID(c)

	type AcademicRequest struct {
		Semester int     `json:"semester" binding:"required,gt=0"`
		SGPA     float64 `json:"sgpa" binding:"required,gte=0,lte=10"`
		CGPA     float64 `json:"cgpa" binding:"gte=0,lte=10"`
	}

	var req AcademicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	row := models.AcademicRecord{
		StudentID: studentID,
		Semester:  req.Semester,
		SGPA:      req.SGPA,
		CGPA:      req.CGPA,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save academic record"})
		return
	}

	bus.SubmissionChanged(studentID, models.VariantAcademic)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Academic record saved",
		"record":  row,
	})
}

func parseDateField(c *gin.Context, field string) (*time.Time, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return &t, nil
}

func parseFloatField(c *gin.Context, field string) (float64, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return f, nil
}
