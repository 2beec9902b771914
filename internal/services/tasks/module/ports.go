package module

import (
	taskssvc "quando/internal/services/tasks/service"
)

// Ports are the cross module ports exposed by tasks
type Ports struct {
	// Tasks is the full task service surface, used by intake and the
	// reminder worker
	Tasks taskssvc.Service
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
