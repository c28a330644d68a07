package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/amansgnr3001/studenthub/models"
)

func recordsContext(t *testing.T, path, id string, role string, callerID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Set("role", role)
	c.Set("userID", callerID)
	return c, w
}

func TestTargetStudentRejectsCrossStudentAccess(t *testing.T) {
	c, w := recordsContext(t, "/api/v1/students/8/records/skills", "8", models.RoleStudent, 9)

	if _, ok := targetStudent(c); ok {
		t.Fatal("student 9 must not address student 8's records")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestTargetStudentAllowsOwnerAndAdmin(t *testing.T) {
	c, _ := recordsContext(t, "/api/v1/students/9/records/skills", "9", models.RoleStudent, 9)
	if id, ok := targetStudent(c); !ok || id != 9 {
		t.Fatalf("owner should pass, got id=%d ok=%v", id, ok)
	}

	c, _ = recordsContext(t, "/api/v1/students/9/records/skills", "9", models.RoleAdmin, 3)
	if id, ok := targetStudent(c); !ok || id != 9 {
		t.Fatalf("admin should pass for any student, got id=%d ok=%v", id, ok)
	}
}

func TestTargetStudentRejectsBadID(t *testing.T) {
	c, w := recordsContext(t, "/api/v1/students/abc/records/skills", "abc", models.RoleAdmin, 3)

	if _, ok := targetStudent(c); ok {
		t.Fatal("non-numeric id must be rejected")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestStudentRecordsStreamRejectsUnknownVariantBeforeOpening(t *testing.T) {
	c, w := recordsContext(t, "/api/v1/stream/students/9/certificates", "9", models.RoleStudent, 9)
	c.Params = append(c.Params, gin.Param{Key: "variant", Value: "certificates"})

	StudentRecordsStream(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown variant, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "text/event-stream" {
		t.Fatal("stream must not open for an unknown variant")
	}
}
