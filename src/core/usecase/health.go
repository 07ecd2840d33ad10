package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"lightbnb/src/core/ports"
)

const componentCheckTimeout = 2 * time.Second

// HealthService handles health check logic.
type HealthService struct {
	log        *slog.Logger
	components map[string]ports.Repository
}

// NewHealthService creates a HealthService that pings each named component.
func NewHealthService(log *slog.Logger, components map[string]ports.Repository) *HealthService {
	return &HealthService{
		log:        log,
		components: components,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check performs a health check of all application components.
// Any unhealthy component turns the overall status to "degraded".
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth, len(s.components)),
	}

	names := make([]string, 0, len(s.components))
	for name := range s.components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, componentCheckTimeout)
		err := s.components[name].Health(checkCtx)
		cancel()
		if err != nil {
			status.Status = "degraded"
			status.Components[name] = ComponentHealth{Status: "unhealthy", Message: err.Error()}
			s.log.Warn("health check failed", "component", name, "error", err)
			continue
		}
		status.Components[name] = ComponentHealth{Status: "healthy"}
	}

	return status
}
