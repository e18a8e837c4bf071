package handlers

import "net/http"

// IndexResponse describes the service at the root URL.
type IndexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Paths   string `json:"paths"`
}

// Index handles the root URL.
func Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, IndexResponse{
		Name:    "Account REST API Service",
		Version: "1.0",
		Paths:   "/accounts",
	})
}

// Health reports that the process is serving requests.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
