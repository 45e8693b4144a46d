// Package health turns the indexer's sync metadata into a liveness verdict.
package health

import (
	"strconv"
	"time"

	"github.com/fastnear/fastnear-api/pkg/db/kv"
	"github.com/fastnear/fastnear-api/pkg/utils"
)

// Verdict is the derived health of the service.
type Verdict string

const (
	OK        Verdict = "ok"
	Unhealthy Verdict = "unhealthy"
)

// Config holds the health thresholds.
type Config struct {
	// MaxHealthyLatencySec is the largest tolerated gap between now and the latest block time.
	MaxHealthyLatencySec float64
	// MaxHealthySyncBlockDiff is the largest tolerated lag of the balance sync behind the block sync.
	MaxHealthySyncBlockDiff uint64
}

// ConfigFromEnv reads MAX_HEALTHY_LATENCY_SEC and MAX_HEALTHY_SYNC_BLOCK_DIFF.
func ConfigFromEnv() Config {
	return Config{
		MaxHealthyLatencySec:    utils.EnvFloat("MAX_HEALTHY_LATENCY_SEC", 10),
		MaxHealthySyncBlockDiff: utils.EnvUint64("MAX_HEALTHY_SYNC_BLOCK_DIFF", 10),
	}
}

// Status is the raw view of the sync metadata. Fields are nil when the metadata is
// missing or malformed.
type Status struct {
	SyncBlockHeight           *uint64  `json:"sync_block_height"`
	SyncLatencySec            *float64 `json:"sync_latency_sec"`
	SyncBlockTimestampNanosec *string  `json:"sync_block_timestamp_nanosec"`
	SyncBalanceBlockHeight    *uint64  `json:"sync_balance_block_height"`
}

// StatusFromMeta derives a Status from meta as seen at now.
// The latency saturates at zero when the block time is ahead of now.
func StatusFromMeta(meta kv.SyncMeta, now time.Time) Status {
	st := Status{
		SyncBlockHeight:           parseHeight(meta.LatestBlock),
		SyncBlockTimestampNanosec: meta.LatestBlockTime,
		SyncBalanceBlockHeight:    parseHeight(meta.LatestBalanceBlock),
	}

	if meta.LatestBlockTime != nil {
		if blockNanos, err := strconv.ParseUint(*meta.LatestBlockTime, 10, 64); err == nil {
			nowNanos := uint64(max(now.UnixNano(), 0))
			var gap uint64
			if nowNanos > blockNanos {
				gap = nowNanos - blockNanos
			}
			latency := float64(gap) / 1e9
			st.SyncLatencySec = &latency
		}
	}
	return st
}

// BlockDiff returns how far the balance sync lags the block sync, saturating at zero.
// It is nil when either height is unknown.
func (s Status) BlockDiff() *uint64 {
	if s.SyncBlockHeight == nil || s.SyncBalanceBlockHeight == nil {
		return nil
	}
	var diff uint64
	if *s.SyncBlockHeight > *s.SyncBalanceBlockHeight {
		diff = *s.SyncBlockHeight - *s.SyncBalanceBlockHeight
	}
	return &diff
}

// Check returns OK only when the latency and block drift are known and within cfg.
// Missing data is unhealthy.
func Check(s Status, cfg Config) Verdict {
	if s.SyncLatencySec == nil || *s.SyncLatencySec > cfg.MaxHealthyLatencySec {
		return Unhealthy
	}
	diff := s.BlockDiff()
	if diff == nil || *diff > cfg.MaxHealthySyncBlockDiff {
		return Unhealthy
	}
	return OK
}

// Evaluate is StatusFromMeta followed by Check.
func Evaluate(meta kv.SyncMeta, cfg Config, now time.Time) Verdict {
	return Check(StatusFromMeta(meta, now), cfg)
}

func parseHeight(v *string) *uint64 {
	if v == nil {
		return nil
	}
	h, err := strconv.ParseUint(*v, 10, 64)
	if err != nil {
		return nil
	}
	return &h
}
