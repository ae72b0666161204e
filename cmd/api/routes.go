package main

// registerRoutes sets up all endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.engine.GET("/healthz", app.handleHealthz)

	// Trigger endpoint for the external scheduler
	app.engine.POST("/run", app.handleRun)
}
