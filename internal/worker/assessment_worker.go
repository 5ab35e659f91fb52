package worker

import (
	"github.com/spec-kit/kit-service/internal/service"
)

// StartAssessmentWorker registers the assessment event listeners.
func StartAssessmentWorker(listener *service.AssessmentListener) {
	if listener == nil {
		return
	}
	listener.RegisterHandlers()
}
