package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleHealthz reports liveness and whether a run is currently in flight.
func (app *App) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"running": app.running.Load(),
	})
}
