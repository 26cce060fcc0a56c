package scheduler

import (
	"context"
	"time"

	"github.com/tourbook/catalog/internal/observability"
)

// StorageProbe pings storage on every run and records the outcome in the
// catalog_storage_up gauge.
func StorageProbe(interval, timeout time.Duration, ping func(context.Context) error) Job {
	return Job{
		Name:     "storage-probe",
		Interval: interval,
		Run: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			err := ping(ctx)
			observability.StoragePingDuration.Observe(time.Since(start).Seconds())

			if err != nil {
				observability.StorageUp.Set(0)
				return err
			}

			observability.StorageUp.Set(1)
			return nil
		},
	}
}
