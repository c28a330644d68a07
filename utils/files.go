// utils/files.go - Attachment storage helpers
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadRoot returns the base directory for stored attachments.
func UploadRoot() string {
	root := os.Getenv("UPLOAD_PATH")
	if root == "" {
		root = "./uploads"
	}
	return root
}

// NormalizeDocPath normalizes a stored document reference so that it always
// begins with a single "/". Clients send back whatever reference they were
// served, so both spellings must resolve to the same row.
func NormalizeDocPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	return "/" + strings.TrimLeft(p, "/")
}

// AbsoluteDocURL turns a stored relative reference into an addressable URL
// using the PUBLIC_BASE_URL prefix when one is configured.
func AbsoluteDocURL(p string) string {
	if p == "" {
		return ""
	}
	base := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	return base + NormalizeDocPath(p)
}

// EnsureStudentFolder creates (if needed) and returns the upload folder for
// one student.
func EnsureStudentFolder(studentID uint) (string, error) {
	dir := filepath.Join(UploadRoot(), fmt.Sprintf("student_%d", studentID))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	return dir, nil
}

// StoredFilename generates a collision-free name for an uploaded file,
// keeping the original extension.
func StoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}
