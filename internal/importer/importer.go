// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importer promotes an external search candidate into a persisted
// catalog resource.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/campusware/unihub/internal/notify"
	"github.com/campusware/unihub/internal/provider"
	"github.com/campusware/unihub/pkg/types"
)

// ErrInvalidCandidate is returned when a candidate lacks a title or a
// usable link.
var ErrInvalidCandidate = errors.New("candidate has no title or usable link")

// Store is the slice of the resource store the importer depends on.
type Store interface {
	CreateResource(ctx context.Context, r *types.Resource) error
	FindBySource(ctx context.Context, source, externalID string) (*types.Resource, error)
}

// Options carries the importer's identity and the catalog placement for
// the new resource.
type Options struct {
	ImporterID   string
	ImporterRole string
	AccessLevel  types.AccessLevel

	DepartmentIDs []string
	CourseIDs     []string
	Tags          []string
	Level         int
}

// Importer converts candidates into resources.
type Importer struct {
	store    Store
	notifier notify.Notifier
}

// New builds an importer. A nil notifier drops notifications.
func New(store Store, notifier notify.Notifier) *Importer {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Importer{store: store, notifier: notifier}
}

// Import persists the candidate as a local resource. Importing the same
// (source, externalID) pair twice is idempotent: the second call returns
// the resource created by the first and reports created=false. Imported
// resources never carry a file reference; the candidate's best link
// becomes the external link. Staff imports are approved immediately.
func (imp *Importer) Import(ctx context.Context, c types.Candidate, opts Options) (r *types.Resource, created bool, err error) {
	if !c.Usable() {
		return nil, false, ErrInvalidCandidate
	}
	if opts.ImporterID == "" {
		return nil, false, fmt.Errorf("importer identity is required")
	}
	if opts.AccessLevel == "" {
		opts.AccessLevel = types.AccessPublic
	}

	if c.Source != "" && c.ExternalID != "" {
		existing, err := imp.store.FindBySource(ctx, c.Source, c.ExternalID)
		if err == nil {
			return existing, false, nil
		}
	}

	resource := &types.Resource{
		Title:            c.Title,
		Description:      c.Description,
		Type:             resourceTypeFor(c.Source),
		Author:           joinAuthors(c.Authors),
		Year:             yearOf(c.PublishedDate),
		Tags:             opts.Tags,
		DepartmentIDs:    opts.DepartmentIDs,
		CourseIDs:        opts.CourseIDs,
		Level:            opts.Level,
		ExternalLink:     c.BestLink(),
		Source:           c.Source,
		SourceExternalID: c.ExternalID,
		UploaderID:       opts.ImporterID,
		UploaderRole:     opts.ImporterRole,
		AccessLevel:      opts.AccessLevel,
	}

	if err := imp.store.CreateResource(ctx, resource); err != nil {
		// A concurrent import of the same record can win the unique index
		// race; resolve to the stored copy.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") && c.Source != "" {
			if existing, findErr := imp.store.FindBySource(ctx, c.Source, c.ExternalID); findErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("persisting imported resource: %w", err)
	}

	msg := notify.Message{
		Audience: firstNonEmpty(opts.CourseIDs, opts.DepartmentIDs),
		Subject:  "New resource imported",
		Body:     fmt.Sprintf("%q was added to the catalog from %s", resource.Title, c.Source),
	}
	if err := imp.notifier.Send(ctx, msg); err != nil {
		// Notification failure never undoes an import.
		return resource, true, nil
	}
	return resource, true, nil
}

// resourceTypeFor maps a provider category to a resource type. Book and
// paper catalogs yield documents; anything unrecognized imports as a bare
// link.
func resourceTypeFor(source string) types.ResourceType {
	switch source {
	case provider.SourceGoogleBooks, provider.SourceOpenAlex, provider.SourceArxiv:
		return types.ResourceDocument
	default:
		return types.ResourceLink
	}
}

func joinAuthors(authors []string) string {
	return strings.Join(authors, ", ")
}

// yearOf extracts the leading year from a provider date string
// ("2019", "2019-03-02", RFC 3339).
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func firstNonEmpty(lists ...[]string) string {
	for _, list := range lists {
		if len(list) > 0 {
			return list[0]
		}
	}
	return ""
}
