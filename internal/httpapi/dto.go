// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httpapi

import "github.com/campusware/unihub/pkg/types"

// SearchQuery binds the search query string parameters.
type SearchQuery struct {
	Query      string `form:"query"`
	Type       string `form:"type"`
	Level      int    `form:"level"`
	Department string `form:"department"`
	Course     string `form:"course"`
	Sources    string `form:"sources"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
}

// ImportRequest binds the import body: the chosen candidate plus catalog
// placement.
type ImportRequest struct {
	Candidate types.Candidate `json:"candidate" binding:"required"`

	AccessLevel   string   `json:"access_level"`
	DepartmentIDs []string `json:"department_ids"`
	CourseIDs     []string `json:"course_ids"`
	Tags          []string `json:"tags"`
	Level         int      `json:"level"`
}

// UploadRequest binds the metadata for a direct upload. The file itself is
// already stored by the blob collaborator; FileURL points at it.
type UploadRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
	Format      string `json:"format"`

	Author    string   `json:"author"`
	Publisher string   `json:"publisher"`
	Year      int      `json:"year"`
	ISBN      string   `json:"isbn"`
	Tags      []string `json:"tags"`

	DepartmentIDs []string `json:"department_ids"`
	CourseIDs     []string `json:"course_ids"`
	Level         int      `json:"level"`

	FileURL      string `json:"file_url"`
	ExternalLink string `json:"external_link"`
	AccessLevel  string `json:"access_level"`
}

// RateRequest binds a rating body.
type RateRequest struct {
	Score  int    `json:"score" binding:"required"`
	Review string `json:"review"`
}
