package db

import (
	"context"
	"fmt"
)

// GetAppConfig reads the scoring configuration row.
func (db *DB) GetAppConfig(ctx context.Context) (*AppConfig, error) {
	var cfg AppConfig
	err := db.pool.QueryRow(ctx,
		`SELECT backend_weight, leadership_weight, scaling_weight,
		        advance_threshold, hold_threshold, updated_at
		 FROM app_config WHERE id = 1`,
	).Scan(&cfg.BackendWeight, &cfg.LeadershipWeight, &cfg.ScalingWeight,
		&cfg.AdvanceThreshold, &cfg.HoldThreshold, &cfg.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get app config: %w", err)
	}
	return &cfg, nil
}

// UpdateAppConfig replaces the scoring configuration row.
func (db *DB) UpdateAppConfig(ctx context.Context, cfg AppConfig) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE app_config
		 SET backend_weight = $1, leadership_weight = $2, scaling_weight = $3,
		     advance_threshold = $4, hold_threshold = $5, updated_at = NOW()
		 WHERE id = 1`,
		cfg.BackendWeight, cfg.LeadershipWeight, cfg.ScalingWeight,
		cfg.AdvanceThreshold, cfg.HoldThreshold,
	)
	if err != nil {
		return fmt.Errorf("failed to update app config: %w", err)
	}
	return nil
}
