package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HealthHandler reports liveness plus basic process stats.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Get handles the health check request.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status": "up",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		body["memoryUsedPercent"] = vm.UsedPercent
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if rss, err := proc.MemoryInfo(); err == nil {
			body["processRSS"] = rss.RSS
		}
	}

	respondJSON(w, http.StatusOK, body)
}
