package services

import (
	"github.com/racs-hpc/hpcadmin-server/pkg/logger"
	"github.com/robfig/cron/v3"
)

var cacheSweepCron *cron.Cron

// StartCacheSweepScheduler sweeps the auth cache every 10 minutes so
// revoked API keys stop resolving within the cache TTL.
func StartCacheSweepScheduler(auth *AuthService) {
	cacheSweepCron = cron.New()
	_, err := cacheSweepCron.AddFunc("*/10 * * * *", func() {
		auth.SweepCache()
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to schedule auth cache sweep")
		return
	}
	cacheSweepCron.Start()
	logger.Info().Msg("auth cache sweep scheduler started")
}

// StopCacheSweepScheduler stops the sweep scheduler.
func StopCacheSweepScheduler() {
	if cacheSweepCron != nil {
		cacheSweepCron.Stop()
		cacheSweepCron = nil
	}
}
