package controllers

import (
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"github.com/amansgnr3001/studenthub/models"
	"github.com/amansgnr3001/studenthub/services"
)

// sseSink adapts one client connection into a services.StreamSink.
type sseSink struct {
	c *gin.Context
}

func (s sseSink) SendEvent(name string, payload interface{}) error {
	if err := sse.Encode(s.c.Writer, sse.Event{Event: name, Data: payload}); err != nil {
		return err
	}
	s.c.Writer.Flush()
	return nil
}

func (s sseSink) SendComment(text string) error {
	if _, err := s.c.Writer.WriteString(": " + text + "\n\n"); err != nil {
		return err
	}
	s.c.Writer.Flush()
	return nil
}

func streamHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
}

// PendingDocumentsStream keeps an admin dashboard current with the pending
// queue. Auth and the admin role are enforced by the route middleware; the
// token may arrive as a query parameter since EventSource cannot set headers.
func PendingDocumentsStream(c *gin.Context) {
	streamHeaders(c)

	sub := bus.Subscribe(services.PendingScope())
	defer sub.Close()

	session := &services.StreamSession{
		Event:    "pending-documents",
		Snapshot: snapshots().PendingSnapshot,
		Changes:  sub,
	}
	session.Run(c.Request.Context(), sseSink{c})
}

// StudentRecordsStream keeps a student dashboard current with one variant of
// the student's own records. A student token scoped to another student is
// rejected before any snapshot is sent.
func StudentRecordsStream(c *gin.Context) {
	studentID, ok := targetStudent(c)
	if !ok {
		return
	}

	variant, err := models.ParseVariant(c.Param("variant"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	streamHeaders(c)

	sub := bus.Subscribe(services.StudentScope(studentID, variant))
	defer sub.Close()

	svc := snapshots()
	session := &services.StreamSession{
		Event: variant.EventName(),
		Snapshot: func() (map[string]interface{}, error) {
			return svc.StudentSnapshot(studentID, variant)
		},
		Changes: sub,
	}
	session.Run(c.Request.Context(), sseSink{c})
}
