package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/mergington/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	reportPermission    = 0600
)

// Run executes the complete signup load test against cfg.BaseURL.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	cfg, err := normalize(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.Get().Named("loadtest")
	stats := &Stats{StartTime: time.Now()}
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting signup load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("students", cfg.Students),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, err
	}

	// Step 2: Discover activities
	acts, err := client.Activities(ctx)
	if err != nil {
		return stats, err
	}
	if len(acts) == 0 {
		return stats, ErrNoActivities
	}
	stats.Activities = len(acts)

	// Step 3: Sign students up concurrently
	signups := generateSignups(cfg.Students, slices.Collect(maps.Keys(acts)))
	accepted := submitSignups(ctx, client, cfg, signups, stats)
	log.Info(ctx, "signups submitted",
		logger.Int("accepted", stats.SignupsAccepted),
		logger.Int("rejected", stats.SignupsRejected),
		logger.Int("failed", stats.SignupsFailed),
	)

	// Step 4: Duplicates must be rejected with 400
	if err := checkDuplicates(ctx, client, cfg, accepted, stats); err != nil {
		return stats, err
	}

	// Step 5: Every accepted student must be listed
	acts, err = client.Activities(ctx)
	if err != nil {
		return stats, err
	}
	stats.MissingAfter = len(missing(acts, accepted))
	if stats.MissingAfter > 0 {
		return stats, fmt.Errorf("%w: %d accepted signups not listed", ErrVerification, stats.MissingAfter)
	}

	if !cfg.KeepMembers {
		// Step 6: Withdraw everyone and confirm removal
		withdrawAll(ctx, client, cfg, accepted, stats)
		acts, err = client.Activities(ctx)
		if err != nil {
			return stats, err
		}
		stats.LeftoverAfter = len(accepted) - len(missing(acts, accepted))
		if stats.LeftoverAfter > 0 {
			return stats, fmt.Errorf("%w: %d students still listed after withdraw", ErrVerification, stats.LeftoverAfter)
		}
	}

	// Step 7: Report
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	if serverStats, err := client.Stats(ctx); err == nil {
		log.Info(ctx, "service stats", logger.Any("stats", serverStats))
	} else {
		log.Warn(ctx, "failed to fetch service stats", logger.Error(err))
	}
	displayFinalStats(ctx, log, stats)

	if cfg.OutputFile != "" {
		if err := saveReport(cfg.OutputFile, stats); err != nil {
			log.Warn(ctx, "failed to save report", logger.Error(err))
		}
	}
	return stats, nil
}

func normalize(cfg Config) (Config, error) {
	if cfg.BaseURL == "" {
		return cfg, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if cfg.Students < 0 || cfg.Workers < 0 || cfg.DupSample < 0 {
		return cfg, fmt.Errorf("%w: counts must not be negative", ErrInvalidConfig)
	}
	if cfg.Students == 0 {
		cfg.Students = DefaultStudents
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

// submitSignups posts every signup and returns the accepted ones.
func submitSignups(ctx context.Context, client *Client, cfg Config, signups []Signup, stats *Stats) []Signup {
	var (
		mu       sync.Mutex
		accepted []Signup
		rejected int64
		failed   int64
	)
	forEach(ctx, cfg.Workers, signups, func(ctx context.Context, s Signup) {
		status, err := client.Signup(ctx, s)
		switch {
		case err != nil:
			atomic.AddInt64(&failed, 1)
		case status == http.StatusOK:
			mu.Lock()
			accepted = append(accepted, s)
			mu.Unlock()
		case status == http.StatusBadRequest:
			// Full activities when capacity is enforced.
			atomic.AddInt64(&rejected, 1)
		default:
			atomic.AddInt64(&failed, 1)
		}
	})

	stats.SignupsSubmitted = len(signups)
	stats.SignupsAccepted = len(accepted)
	stats.SignupsRejected = int(rejected)
	stats.SignupsFailed = int(failed)
	return accepted
}

func checkDuplicates(ctx context.Context, client *Client, cfg Config, accepted []Signup, stats *Stats) error {
	sample := accepted[:min(cfg.DupSample, len(accepted))]
	for _, s := range sample {
		status, err := client.Signup(ctx, s)
		if err != nil {
			return err
		}
		stats.DuplicatesTried++
		if status != http.StatusBadRequest {
			return fmt.Errorf("%w: duplicate signup for %q returned %d", ErrVerification, s.Activity, status)
		}
		stats.DuplicatesDenied++
	}
	return nil
}

func withdrawAll(ctx context.Context, client *Client, cfg Config, accepted []Signup, stats *Stats) {
	var ok, failed int64
	forEach(ctx, cfg.Workers, accepted, func(ctx context.Context, s Signup) {
		status, err := client.Withdraw(ctx, s)
		if err != nil || status != http.StatusOK {
			atomic.AddInt64(&failed, 1)
			return
		}
		atomic.AddInt64(&ok, 1)
	})
	stats.Withdrawn = int(ok)
	stats.WithdrawFailed = int(failed)
}

func saveReport(path string, stats *Stats) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, reportPermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var acceptRate, perSecond float64
	if stats.SignupsSubmitted > 0 {
		acceptRate = float64(stats.SignupsAccepted) / float64(stats.SignupsSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.SignupsSubmitted) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("activities", stats.Activities),
		logger.Int("signupsSubmitted", stats.SignupsSubmitted),
		logger.Int("signupsAccepted", stats.SignupsAccepted),
		logger.Int("signupsRejected", stats.SignupsRejected),
		logger.Int("signupsFailed", stats.SignupsFailed),
		logger.Int("duplicatesDenied", stats.DuplicatesDenied),
		logger.Int("withdrawn", stats.Withdrawn),
		logger.Duration("duration", stats.Duration),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("signupsPerSecond", perSecond),
	)
}
