package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amansgnr3001/studenthub/middleware"
	"github.com/amansgnr3001/studenthub/models"
)

// targetStudent resolves the :id path parameter and enforces the ownership
// rule: a student may only address their own records, an admin any student.
func targetStudent(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student id"})
		return 0, false
	}
	studentID := uint(id)

	if middleware.CurrentRole(c) == models.RoleStudent {
		callerID, _ := middleware.CurrentUserID(c)
		if callerID != studentID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied for another student's records"})
			return 0, false
		}
	}
	return studentID, true
}

// GetStudentRecords returns the full current collection for one student and
// one variant, the same payload a stream tick carries.
func GetStudentRecords(c *gin.Context) {
	studentID, ok := targetStudent(c)
	if !ok {
		return
	}

	variant, err := models.ParseVariant(c.Param("variant"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := snapshots().StudentSnapshot(studentID, variant)
	if err != nil {
		if errors.Is(err, models.ErrUnknownVariant) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// GetPendingDocuments returns the admin pending queue as a one-shot snapshot.
func GetPendingDocuments(c *gin.Context) {
	payload, err := snapshots().PendingSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending documents"})
		return
	}

	c.JSON(http.StatusOK, payload)
}
