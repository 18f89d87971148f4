package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartRejectedAccountCleaner removes rejected registrations older than the
// retention window on a fixed interval.
func StartRejectedAccountCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM app_users
                     WHERE status = 'rejected'
                       AND created_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to clean rejected accounts", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned rejected accounts", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
