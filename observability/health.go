package observability

// HealthStatus is the state reported by a component or the whole service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// severity orders statuses; unknown values rank as down.
func (s HealthStatus) severity() int {
	switch s {
	case HealthStatusUp:
		return 0
	case HealthStatusDegraded:
		return 1
	default:
		return 2
	}
}

// Worse returns whichever of s and other is more severe.
func (s HealthStatus) Worse(other HealthStatus) HealthStatus {
	if other.severity() > s.severity() {
		return other
	}
	return s
}

// Health is one component's report.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ServiceHealth is the folded view served by /health.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	Mode       string       `json:"mode,omitempty"`
	Components []Health     `json:"components,omitempty"`
}

// NewServiceHealth starts an empty report with status up.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{Service: service, Status: HealthStatusUp, Version: version}
}

// AddComponent appends h and lowers the overall status to match it.
func (sh *ServiceHealth) AddComponent(h Health) {
	sh.Components = append(sh.Components, h)
	sh.Status = sh.Status.Worse(h.Status)
}

// Aggregate folds component reports into a service report.
func Aggregate(service, version, mode string, results []Health) *ServiceHealth {
	sh := NewServiceHealth(service, version)
	sh.Mode = mode
	for _, h := range results {
		sh.AddComponent(h)
	}
	return sh
}
