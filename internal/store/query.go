// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/campusware/unihub/pkg/types"
)

const resourceColumns = `r.id, r.title, r.description, r.type, r.format, r.author, r.publisher,
	r.year, r.isbn, r.tags, r.level, r.file_url, r.external_link, r.source, r.source_external_id,
	r.uploader_id, r.uploader_role, r.access_level, r.approved, r.views, r.downloads, r.shares,
	r.average_rating, r.created_at, r.updated_at`

// FindResources runs a filtered query over the catalog and returns one page
// of resources plus the total match count. The count is an independent
// query over the same filter, so page arithmetic stays correct even when
// rows shift between the two statements; that race is accepted. Ordering is
// text-match rank when the filter carries a query, newest-first otherwise.
func (s *Store) FindResources(ctx context.Context, filter types.ResourceFilter, page, limit int) ([]types.Resource, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	where, args := buildFilter(filter)

	from := `FROM resources r`
	order := `ORDER BY r.created_at DESC`
	if filter.Query != "" {
		from = `FROM resources r JOIN resources_fts f ON f.rowid = r.rowid`
		where = append([]string{`resources_fts MATCH ?`}, where...)
		args = append([]any{ftsQuery(filter.Query)}, args...)
		order = `ORDER BY bm25(resources_fts)`
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countSQL := `SELECT count(*) ` + from + clause
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting resources: %w", err)
	}

	pageSQL := `SELECT ` + resourceColumns + ` ` + from + clause + ` ` + order + ` LIMIT ? OFFSET ?`
	pageArgs := append(append([]any{}, args...), limit, (page-1)*limit)

	rows, err := s.db.QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying resources: %w", err)
	}
	defer rows.Close()

	var items []types.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating resources: %w", err)
	}

	for i := range items {
		if err := s.loadAssociations(ctx, &items[i]); err != nil {
			return nil, 0, err
		}
	}

	return items, total, nil
}

// buildFilter translates a ResourceFilter into WHERE clauses. The free-text
// term is handled by the caller because it changes the FROM clause.
func buildFilter(filter types.ResourceFilter) (where []string, args []any) {
	if filter.ApprovedOnly {
		where = append(where, `r.approved = 1`)
	}
	if filter.Type != "" {
		where = append(where, `r.type = ?`)
		args = append(args, string(filter.Type))
	}
	if filter.Level != 0 {
		where = append(where, `r.level = ?`)
		args = append(args, filter.Level)
	}
	if filter.DepartmentID != "" {
		where = append(where, `r.id IN (SELECT resource_id FROM resource_departments WHERE department_id = ?)`)
		args = append(args, filter.DepartmentID)
	}
	if filter.CourseID != "" {
		where = append(where, `r.id IN (SELECT resource_id FROM resource_courses WHERE course_id = ?)`)
		args = append(args, filter.CourseID)
	}
	return where, args
}

// ftsQuery quotes each token of free text so punctuation in user input
// cannot break the FTS5 match expression.
func ftsQuery(text string) string {
	fields := strings.Fields(text)
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " ")
}

// GetResource returns one resource with its ratings and catalog
// associations, or ErrNotFound.
func (s *Store) GetResource(ctx context.Context, id string) (*types.Resource, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+resourceColumns+` FROM resources r WHERE r.id = ?`, id)
	r, err := scanResource(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.loadAssociations(ctx, r); err != nil {
		return nil, err
	}
	if err := s.loadRatings(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// FindBySource returns the resource imported from (source, externalID), or
// ErrNotFound.
func (s *Store) FindBySource(ctx context.Context, source, externalID string) (*types.Resource, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM resources WHERE source = ? AND source_external_id = ?`,
		source, externalID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up imported resource: %w", err)
	}
	return s.GetResource(ctx, id)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanResource(row scanner) (*types.Resource, error) {
	var r types.Resource
	var typ, access, tagsJSON, createdAt, updatedAt string
	var approved int

	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &typ, &r.Format, &r.Author, &r.Publisher,
		&r.Year, &r.ISBN, &tagsJSON, &r.Level, &r.FileURL, &r.ExternalLink,
		&r.Source, &r.SourceExternalID, &r.UploaderID, &r.UploaderRole,
		&access, &approved, &r.Views, &r.Downloads, &r.Shares,
		&r.AverageRating, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning resource: %w", err)
	}

	r.Type = types.ResourceType(typ)
	r.AccessLevel = types.AccessLevel(access)
	r.Approved = approved != 0
	if tagsJSON != "" {
		json.Unmarshal([]byte(tagsJSON), &r.Tags)
	}
	if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		r.CreatedAt = t
	}
	if t, parseErr := time.Parse(time.RFC3339Nano, updatedAt); parseErr == nil {
		r.UpdatedAt = t
	}
	return &r, nil
}

func (s *Store) loadAssociations(ctx context.Context, r *types.Resource) error {
	depts, err := s.stringColumn(ctx,
		`SELECT department_id FROM resource_departments WHERE resource_id = ? ORDER BY department_id`, r.ID)
	if err != nil {
		return fmt.Errorf("loading department associations: %w", err)
	}
	r.DepartmentIDs = depts

	courses, err := s.stringColumn(ctx,
		`SELECT course_id FROM resource_courses WHERE resource_id = ? ORDER BY course_id`, r.ID)
	if err != nil {
		return fmt.Errorf("loading course associations: %w", err)
	}
	r.CourseIDs = courses
	return nil
}

func (s *Store) loadRatings(ctx context.Context, r *types.Resource) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rater_id, score, review, created_at FROM ratings WHERE resource_id = ? ORDER BY created_at`, r.ID)
	if err != nil {
		return fmt.Errorf("loading ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rt types.Rating
		var createdAt string
		if err := rows.Scan(&rt.RaterID, &rt.Score, &rt.Review, &createdAt); err != nil {
			return fmt.Errorf("scanning rating: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			rt.CreatedAt = t
		}
		r.Ratings = append(r.Ratings, rt)
	}
	return rows.Err()
}

func (s *Store) stringColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
