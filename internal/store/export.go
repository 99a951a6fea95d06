// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/campusware/unihub/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the full catalog (ratings and associations included)
// to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	ids, err := s.stringColumn(ctx, `SELECT id FROM resources ORDER BY created_at LIMIT ?`, exportLimit)
	if err != nil {
		return fmt.Errorf("listing resources for export: %w", err)
	}

	resources := make([]types.Resource, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetResource(ctx, id)
		if err != nil {
			return fmt.Errorf("exporting resource %s: %w", id, err)
		}
		resources = append(resources, *r)
	}

	data, err := yaml.Marshal(resources)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Seed loads resources from a YAML file and inserts any that validate.
// Invalid entries are reported to w and skipped; Seed returns the number
// inserted.
func (s *Store) Seed(ctx context.Context, path string, w io.Writer) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading seed file: %w", err)
	}

	var resources []types.Resource
	if err := yaml.Unmarshal(data, &resources); err != nil {
		return 0, fmt.Errorf("parsing seed file: %w", err)
	}

	inserted := 0
	for i := range resources {
		if err := s.CreateResource(ctx, &resources[i]); err != nil {
			fmt.Fprintf(w, "skipped %q: %v\n", resources[i].Title, err)
			continue
		}
		inserted++
	}
	return inserted, nil
}

// Stats summarizes the catalog for the store stats command.
type Stats struct {
	Resources int
	Imported  int
	Ratings   int
	ByType    map[string]int
}

// CatalogStats returns catalog counts.
func (s *Store) CatalogStats(ctx context.Context) (Stats, error) {
	st := Stats{ByType: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM resources`).Scan(&st.Resources); err != nil {
		return st, fmt.Errorf("counting resources: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM resources WHERE source IS NOT NULL AND source != ''`,
	).Scan(&st.Imported); err != nil {
		return st, fmt.Errorf("counting imports: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM ratings`).Scan(&st.Ratings); err != nil {
		return st, fmt.Errorf("counting ratings: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT type, count(*) FROM resources GROUP BY type`)
	if err != nil {
		return st, fmt.Errorf("counting by type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return st, fmt.Errorf("scanning type count: %w", err)
		}
		st.ByType[typ] = n
	}
	return st, rows.Err()
}
