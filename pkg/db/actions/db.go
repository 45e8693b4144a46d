package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/fastnear/fastnear-api/pkg/db/clickhouse"
	"github.com/fastnear/fastnear-api/pkg/metrics"
	"github.com/fastnear/fastnear-api/pkg/utils"
	"go.uber.org/zap"
)

const (
	// TableName is the ClickHouse table holding one row per executed action.
	TableName = "actions"

	// HistoryLimit bounds the rows scanned per lookup.
	HistoryLimit = 100
)

// DB reads add-key history from the actions table. It implements Store.
type DB struct {
	clickhouse.Client
}

// New connects to the actions database named by CLICKHOUSE_DB.
func New(ctx context.Context, logger *zap.Logger) (*DB, error) {
	dbName := utils.Env("CLICKHOUSE_DB", clickhouse.DefaultDatabase)
	poolConfig := clickhouse.PoolConfigFromEnv(clickhouse.ComponentAPI)

	client, err := clickhouse.New(ctx, logger.With(
		zap.String("db", dbName),
		zap.String("component", poolConfig.Component),
	), dbName, poolConfig)
	if err != nil {
		return nil, err
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing connection pool. The actions table must already exist.
func NewWithClient(client clickhouse.Client) *DB {
	return &DB{Client: client}
}

// AccountsByPublicKey returns the distinct accounts publicKey was added to, newest first.
func (db *DB) AccountsByPublicKey(ctx context.Context, publicKey string) ([]string, error) {
	rows, err := db.addKeyHistory(ctx, "accounts_by_public_key", "public_key", publicKey)
	if err != nil {
		return nil, err
	}
	return distinct(rows, func(a Action) string { return a.AccountID }), nil
}

// PublicKeysByAccount returns the distinct keys added to accountID, newest first.
func (db *DB) PublicKeysByAccount(ctx context.Context, accountID string) ([]string, error) {
	rows, err := db.addKeyHistory(ctx, "public_keys_by_account", "account_id", accountID)
	if err != nil {
		return nil, err
	}
	return distinct(rows, func(a Action) string {
		if a.PublicKey == nil {
			return ""
		}
		return *a.PublicKey
	}), nil
}

func (db *DB) addKeyHistory(ctx context.Context, op, column, value string) (rows []Action, err error) {
	started := time.Now()
	defer func() { metrics.Store().Observe("clickhouse."+op, started, err) }()

	query := addKeyQuery(column)
	if err := db.Select(ctx, &rows, query, value, uint8(ReceiptStatusSuccess), uint8(ActionAddKey)); err != nil {
		return nil, fmt.Errorf("query %s: %w", op, err)
	}

	if db.Logger != nil {
		db.Logger.Debug("Add-key history query",
			zap.String("op", op),
			zap.String(column, value),
			zap.Int("rows", len(rows)),
			zap.Duration("took", time.Since(started)))
	}
	return rows, nil
}

// addKeyQuery selects successful AddKey actions filtered on column. column is never user input.
func addKeyQuery(column string) string {
	return fmt.Sprintf(`
		SELECT
			block_height, block_timestamp, receipt_id, account_id, public_key, status, action
		FROM %s
		WHERE %s = ? AND status = ? AND action = ?
		ORDER BY block_height DESC
		LIMIT %d
	`, TableName, column, HistoryLimit)
}

// distinct keeps the first occurrence of each non-empty key, preserving order.
func distinct(rows []Action, key func(Action) string) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, key(row))
	}
	return utils.Dedup(ids)
}
