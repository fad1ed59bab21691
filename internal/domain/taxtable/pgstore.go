package taxtable

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository loads tax tables from a tax_tables(version, document)
// config store instead of the filesystem.
type PGRepository struct {
	Pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{Pool: pool}
}

func (r *PGRepository) Load(ctx context.Context, version string) (*Table, error) {
	var document []byte
	err := r.Pool.QueryRow(ctx,
		`SELECT document FROM tax_tables WHERE version = $1`, version,
	).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tax table version %q: %w", version, ErrTableNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query tax table %q: %w", version, err)
	}
	return decodeTable(document)
}

func (r *PGRepository) AvailableVersions(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT version FROM tax_tables ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("list tax table versions: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}
	return versions, rows.Err()
}
