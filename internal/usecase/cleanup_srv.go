package usecase

import (
	"context"
	"time"

	"advonex/internal/data/repository"

	"go.uber.org/zap"
)

const (
	phoneOtpSweepInterval = 24 * time.Hour
	emailOtpSweepInterval = time.Hour
)

// CleanupService sweeps expired phone OTPs daily and expired or consumed
// email OTPs hourly.
type CleanupService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCleanupService(repo *repository.Repository, log *zap.Logger) *CleanupService {
	return &CleanupService{
		repo: repo,
		log:  log,
	}
}

// Start launches the sweep loops. They stop when ctx is cancelled.
func (s *CleanupService) Start(ctx context.Context) {
	go s.loop(ctx, phoneOtpSweepInterval, s.SweepPhoneOtps)
	go s.loop(ctx, emailOtpSweepInterval, s.SweepEmailOtps)
	s.log.Info("OTP cleanup sweeps started")
}

func (s *CleanupService) loop(ctx context.Context, interval time.Duration, sweep func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep(ctx)
		}
	}
}

func (s *CleanupService) SweepPhoneOtps(ctx context.Context) {
	deleted, err := s.repo.PhoneOtp.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("Phone OTP sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.log.Info("Swept expired phone OTPs", zap.Int64("deleted", deleted))
	}
}

func (s *CleanupService) SweepEmailOtps(ctx context.Context) {
	deleted, err := s.repo.EmailOtp.DeleteExpiredOrUsed(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("Email OTP sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.log.Info("Swept stale email OTPs", zap.Int64("deleted", deleted))
	}
}
