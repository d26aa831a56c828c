package worker

import (
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/events"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/service"
)

// StartEventWorkers subscribes the audit and notification handlers to the bus.
// Subscriptions happen before the HTTP server starts accepting traffic so no
// event is published without its handlers in place.
func StartEventWorkers(bus events.Bus, audit *service.AuditService, notifications *service.NotificationService) {
	if audit != nil {
		audit.Register(bus)
	}
	if notifications != nil {
		notifications.RegisterHandlers()
	}
}
