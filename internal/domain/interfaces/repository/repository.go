package repository

import "context"

// Row is one materialized remote row keyed by column name.
type Row map[string]string

// RemoteTable abstracts the remote spreadsheet-like store: row append and
// bulk read, nothing else. Implementations are expected to be slow,
// rate-limited and occasionally flaky; callers own retry policy.
type RemoteTable interface {
	AppendRow(ctx context.Context, values []string) error
	ReadAllRecords(ctx context.Context) ([]Row, error)
}
