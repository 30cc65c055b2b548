package api

func (s *Server) registerRoutes() {
	// Health and daemon status
	s.router.HandleFunc("/healthz", s.handleHealth)
	s.router.HandleFunc("/status", s.handleStatus)

	// Score operations
	s.router.HandleFunc("/api/scores", s.handleScores) // GET /api/scores?path=...
	s.router.HandleFunc("/api/scan", s.handleScan)     // POST /api/scan
}
