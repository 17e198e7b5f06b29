package health

import (
	"encoding/json"
	"net/http"
	"runtime"
)

// VersionInfo contains build information served on /version.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// Standard probe paths.
const (
	LivenessPath  = "/health"
	ReadinessPath = "/ready"
	VersionPath   = "/version"
)

// LivenessHandler answers 200 while the process is running.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, c.Liveness())
	}
}

// ReadinessHandler answers 200 when every check passes and 503 otherwise.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := c.Readiness(r.Context())
		code := http.StatusOK
		if report.Status != StatusReady {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, r, code, report)
	}
}

// VersionHandler serves info with the running Go version filled in.
func VersionHandler(info VersionInfo) http.HandlerFunc {
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, info)
	}
}

// Mount registers the probe and version handlers on mux.
func Mount(mux *http.ServeMux, checker *Checker, info VersionInfo) {
	mux.HandleFunc(LivenessPath, checker.LivenessHandler())
	mux.HandleFunc(ReadinessPath, checker.ReadinessHandler())
	mux.HandleFunc(VersionPath, VersionHandler(info))
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if r.Method != http.MethodHead {
		_ = json.NewEncoder(w).Encode(body)
	}
}
