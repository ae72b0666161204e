package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// handleRun kicks off one pipeline pass. The run detaches from the request:
// discovery alone can take minutes of resampling, so the scheduler gets an
// immediate 202 and the outcome goes to the logs, fire-and-forget like a
// cron job.
func (app *App) handleRun(c *gin.Context) {
	if err := app.cfg.Validate(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	if !app.running.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}

	runID := uuid.NewString()
	go func() {
		defer app.running.Store(false)
		if _, err := app.orchestrator.Run(context.Background(), runID); err != nil {
			app.logger.Error("pipeline run failed", "run_id", runID, "error", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"run_id": runID})
}
