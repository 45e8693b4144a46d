package health

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastnear/fastnear-api/pkg/db/kv"
)

func strPtr(s string) *string { return &s }

func meta(blockTime *string, height, balanceHeight string) kv.SyncMeta {
	return kv.SyncMeta{
		LatestBlock:        strPtr(height),
		LatestBlockTime:    blockTime,
		LatestBalanceBlock: strPtr(balanceHeight),
	}
}

func TestEvaluate(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	fiveSecondsAgo := strPtr(strconv.FormatInt(now.Add(-5*time.Second).UnixNano(), 10))
	cfg := Config{MaxHealthyLatencySec: 10, MaxHealthySyncBlockDiff: 3}

	tests := []struct {
		name string
		meta kv.SyncMeta
		want Verdict
	}{
		{
			name: "fresh and balance close behind",
			meta: meta(fiveSecondsAgo, "100", "98"),
			want: OK,
		},
		{
			name: "balance sync too far behind",
			meta: meta(fiveSecondsAgo, "100", "90"),
			want: Unhealthy,
		},
		{
			name: "missing block time",
			meta: meta(nil, "100", "98"),
			want: Unhealthy,
		},
		{
			name: "balance sync ahead saturates to zero drift",
			meta: meta(fiveSecondsAgo, "100", "105"),
			want: OK,
		},
		{
			name: "latency above threshold",
			meta: meta(strPtr(strconv.FormatInt(now.Add(-11*time.Second).UnixNano(), 10)), "100", "100"),
			want: Unhealthy,
		},
		{
			name: "block time in the future counts as zero latency",
			meta: meta(strPtr(strconv.FormatInt(now.Add(time.Minute).UnixNano(), 10)), "100", "100"),
			want: OK,
		},
		{
			name: "malformed height",
			meta: meta(fiveSecondsAgo, "one hundred", "98"),
			want: Unhealthy,
		},
		{
			name: "malformed block time",
			meta: meta(strPtr("yesterday"), "100", "98"),
			want: Unhealthy,
		},
		{
			name: "no metadata at all",
			meta: kv.SyncMeta{},
			want: Unhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.meta, cfg, now))
		})
	}
}

func TestStatusFromMeta(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	blockTime := strconv.FormatInt(now.Add(-1500*time.Millisecond).UnixNano(), 10)

	st := StatusFromMeta(meta(&blockTime, "120", "118"), now)

	require.NotNil(t, st.SyncBlockHeight)
	assert.Equal(t, uint64(120), *st.SyncBlockHeight)
	require.NotNil(t, st.SyncBalanceBlockHeight)
	assert.Equal(t, uint64(118), *st.SyncBalanceBlockHeight)
	require.NotNil(t, st.SyncLatencySec)
	assert.InDelta(t, 1.5, *st.SyncLatencySec, 1e-9)
	require.NotNil(t, st.SyncBlockTimestampNanosec)
	assert.Equal(t, blockTime, *st.SyncBlockTimestampNanosec)
	require.NotNil(t, st.BlockDiff())
	assert.Equal(t, uint64(2), *st.BlockDiff())
}

func TestStatusFromMeta_Missing(t *testing.T) {
	st := StatusFromMeta(kv.SyncMeta{}, time.Now())
	assert.Nil(t, st.SyncBlockHeight)
	assert.Nil(t, st.SyncLatencySec)
	assert.Nil(t, st.SyncBlockTimestampNanosec)
	assert.Nil(t, st.SyncBalanceBlockHeight)
	assert.Nil(t, st.BlockDiff())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MAX_HEALTHY_LATENCY_SEC", "2.5")
	t.Setenv("MAX_HEALTHY_SYNC_BLOCK_DIFF", "7")
	cfg := ConfigFromEnv()
	assert.Equal(t, 2.5, cfg.MaxHealthyLatencySec)
	assert.Equal(t, uint64(7), cfg.MaxHealthySyncBlockDiff)
}
