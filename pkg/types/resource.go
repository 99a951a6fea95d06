// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the unihub backend:
// the persisted Resource and its ratings, the ephemeral Candidate produced
// by external catalog searches, and the configuration structs read from
// unihub.yaml.
package types

import "time"

// ResourceType classifies a catalog resource.
type ResourceType string

const (
	ResourceDocument ResourceType = "document"
	ResourceLink     ResourceType = "link"
	ResourceVideo    ResourceType = "video"
	ResourceImage    ResourceType = "image"
	ResourceOther    ResourceType = "other"
)

// ValidResourceType reports whether t is one of the known resource types.
func ValidResourceType(t ResourceType) bool {
	switch t {
	case ResourceDocument, ResourceLink, ResourceVideo, ResourceImage, ResourceOther:
		return true
	}
	return false
}

// AccessLevel controls who may open a resource's detail or download it.
type AccessLevel string

const (
	AccessPublic     AccessLevel = "public"
	AccessDepartment AccessLevel = "department"
	AccessCourse     AccessLevel = "course"
	AccessPrivate    AccessLevel = "private"
)

// ValidAccessLevel reports whether l is one of the known access levels.
func ValidAccessLevel(l AccessLevel) bool {
	switch l {
	case AccessPublic, AccessDepartment, AccessCourse, AccessPrivate:
		return true
	}
	return false
}

// Rating is one user's score for a resource. A user holds at most one
// rating per resource; rating again replaces the previous entry.
type Rating struct {
	RaterID   string    `json:"rater_id" yaml:"rater_id"`
	Score     int       `json:"score" yaml:"score"`
	Review    string    `json:"review,omitempty" yaml:"review,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Resource is a persisted catalog entry: either uploaded by a user (file
// reference stored by the blob collaborator) or imported from an external
// provider (external link only).
type Resource struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Type        ResourceType `json:"type" yaml:"type"`
	Format      string       `json:"format,omitempty" yaml:"format,omitempty"`

	Author    string   `json:"author,omitempty" yaml:"author,omitempty"`
	Publisher string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Year      int      `json:"year,omitempty" yaml:"year,omitempty"`
	ISBN      string   `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Catalog associations.
	DepartmentIDs []string `json:"department_ids,omitempty" yaml:"department_ids,omitempty"`
	CourseIDs     []string `json:"course_ids,omitempty" yaml:"course_ids,omitempty"`
	Level         int      `json:"level,omitempty" yaml:"level,omitempty"`

	// Exactly one of FileURL/ExternalLink may be empty. A link resource
	// always carries ExternalLink.
	FileURL      string `json:"file_url,omitempty" yaml:"file_url,omitempty"`
	ExternalLink string `json:"external_link,omitempty" yaml:"external_link,omitempty"`

	// Source and SourceExternalID identify the provider record an imported
	// resource came from. Both are empty for direct uploads.
	Source           string `json:"source,omitempty" yaml:"source,omitempty"`
	SourceExternalID string `json:"source_external_id,omitempty" yaml:"source_external_id,omitempty"`

	UploaderID   string      `json:"uploader_id" yaml:"uploader_id"`
	UploaderRole string      `json:"uploader_role,omitempty" yaml:"uploader_role,omitempty"`
	AccessLevel  AccessLevel `json:"access_level" yaml:"access_level"`
	Approved     bool        `json:"approved" yaml:"approved"`

	Views     int64 `json:"views" yaml:"views"`
	Downloads int64 `json:"downloads" yaml:"downloads"`
	Shares    int64 `json:"shares" yaml:"shares"`

	Ratings       []Rating `json:"ratings,omitempty" yaml:"ratings,omitempty"`
	AverageRating float64  `json:"average_rating" yaml:"average_rating"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Link returns the resource's usable URL: the stored file if present,
// otherwise the external link.
func (r *Resource) Link() string {
	if r.FileURL != "" {
		return r.FileURL
	}
	return r.ExternalLink
}

// RoleStaff marks uploads and imports that are auto-approved.
const RoleStaff = "staff"
