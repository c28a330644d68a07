package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amansgnr3001/studenthub/config"
	"github.com/amansgnr3001/studenthub/models"
	"github.com/amansgnr3001/studenthub/services"
)

type ReviewRequest struct {
	StudentID uint   `json:"student_id" binding:"required"`
	FilePath  string `json:"file_path" binding:"required"`
	Variant   string `json:"variant" binding:"required"`
	Reason    string `json:"reason"`
}

// AcceptSubmission resolves one pending submission to accepted (admin only)
func AcceptSubmission(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	variant, err := reviews().Accept(req.StudentID, req.FilePath, req.Variant)
	if err != nil {
		reviewError(c, err)
		return
	}

	notifyDecision(req.StudentID, variant, models.StatusAccepted, "")
	c.JSON(http.StatusOK, gin.H{
		"message": variant.Title() + " accepted",
	})
}

// RejectSubmission resolves one pending submission to rejected (admin only)
func RejectSubmission(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	variant, err := reviews().Reject(req.StudentID, req.FilePath, req.Variant, req.Reason)
	if err != nil {
		reviewError(c, err)
		return
	}

	notifyDecision(req.StudentID, variant, models.StatusRejected, req.Reason)
	c.JSON(http.StatusOK, gin.H{
		"message": variant.Title() + " rejected",
	})
}

func reviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownVariant),
		errors.Is(err, services.ErrNotReviewable),
		errors.Is(err, services.ErrEmptyReason):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No matching submission found"})
	case errors.Is(err, services.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": "Submission has already been reviewed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
	}
}

// notifyDecision emails the student about the review outcome. Best effort:
// a mail failure is logged and never fails the review itself.
func notifyDecision(studentID uint, variant models.Variant, status, reason string) {
	var student models.Student
	if err := config.DB.Where("student_id = ?", studentID).First(&student).Error; err != nil {
		log.Printf("review mail: student %d not found: %v", studentID, err)
		return
	}

	subject := fmt.Sprintf("Your %s submission was %s", variant.Title(), status)
	body := fmt.Sprintf("<p>Dear %s,</p><p>Your %s submission has been <b>%s</b>.</p>",
		student.Name, variant.Title(), status)
	if reason != "" {
		body += fmt.Sprintf("<p>Reviewer note: %s</p>", reason)
	}

	go func() {
		if err := config.SendMail([]string{student.Email}, subject, body); err != nil {
			log.Printf("review mail: failed to notify %s: %v", student.Email, err)
		}
	}()
}
