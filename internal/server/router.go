package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"rollcall/internal/logger"
)

// Router builds the REST surface.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogging)

	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/summary", s.handleSummary).Methods("GET")

	r.HandleFunc("/api/employees", s.handleListEmployees).Methods("GET")
	r.HandleFunc("/api/employees", s.handleCreateEmployee).Methods("POST")
	r.HandleFunc("/api/employees/{id}", s.handleRemoveEmployee).Methods("DELETE")
	r.HandleFunc("/api/employees/{id}/restore", s.handleRestoreEmployee).Methods("POST")
	r.HandleFunc("/api/employees/{id}/attendance", s.handleAttendance).Methods("GET")

	r.HandleFunc("/api/attendance", s.handleAllAttendance).Methods("GET")
	r.HandleFunc("/api/punch", s.handlePunch).Methods("POST")

	r.HandleFunc("/api/leave", s.handleListLeave).Methods("GET")
	r.HandleFunc("/api/leave", s.handleSubmitLeave).Methods("POST")
	r.HandleFunc("/api/leave/{id}/approve", s.handleApproveLeave).Methods("POST")
	r.HandleFunc("/api/leave/{id}/reject", s.handleRejectLeave).Methods("POST")

	r.HandleFunc("/api/activity", s.handleActivity).Methods("GET")

	return r
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
