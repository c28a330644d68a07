package controllers

import (
	"github.com/amansgnr3001/studenthub/config"
	"github.com/amansgnr3001/studenthub/services"
)

// bus fans write-path change signals out to the open stream sessions.
var bus = services.NewChangeBus()

func snapshots() *services.SnapshotService {
	return services.NewSnapshotService(config.DB)
}

func reviews() *services.ReviewService {
	return services.NewReviewService(config.DB, bus)
}
