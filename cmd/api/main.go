package main

// @title Property Dashboard API
// @version 1.0
// @description Listings proxy with NaN sanitization and a server-side market dashboard.
// @BasePath /api
func main() {
	cfg := LoadConfiguration()

	app := NewApp(cfg)
	defer app.cleanup()

	app.InitializeServer()
	app.StartServer()
}
