package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/service"
)

// StartSLASweep runs the periodic SLA breach check until ctx is cancelled.
// An interval of zero or less disables the sweep.
func StartSLASweep(ctx context.Context, slaService *service.SLAService, interval time.Duration, logger *zap.Logger) {
	if slaService == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Info("sla breach sweep started", zap.Duration("interval", interval))
		for {
			select {
			case <-ctx.Done():
				logger.Info("sla breach sweep stopped")
				return
			case <-ticker.C:
				if err := slaService.CheckBreaches(ctx); err != nil {
					logger.Error("sla breach sweep failed", zap.Error(err))
				}
			}
		}
	}()
}
