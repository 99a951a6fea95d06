// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campusware/unihub/internal/importer"
	"github.com/campusware/unihub/internal/notify"
	"github.com/campusware/unihub/internal/store"
	"github.com/campusware/unihub/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import an external candidate as a local resource",
	Long: `Import persists a search candidate from an external provider as a local
catalog resource. Re-importing the same provider record returns the
existing resource instead of creating a copy.`,
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := portalConfig()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	authorsFlag, _ := cmd.Flags().GetString("authors")
	published, _ := cmd.Flags().GetString("published")
	previewLink, _ := cmd.Flags().GetString("preview-link")
	infoLink, _ := cmd.Flags().GetString("info-link")
	source, _ := cmd.Flags().GetString("source")
	externalID, _ := cmd.Flags().GetString("external-id")

	user, _ := cmd.Flags().GetString("user")
	role, _ := cmd.Flags().GetString("role")
	access, _ := cmd.Flags().GetString("access")
	departments, _ := cmd.Flags().GetString("departments")
	courses, _ := cmd.Flags().GetString("courses")
	tags, _ := cmd.Flags().GetString("tags")
	level, _ := cmd.Flags().GetInt("level")

	candidate := types.Candidate{
		ID:            externalID,
		Title:         title,
		Description:   description,
		Authors:       splitFlag(authorsFlag),
		PublishedDate: published,
		PreviewLink:   previewLink,
		InfoLink:      infoLink,
		Source:        source,
		ExternalID:    externalID,
	}

	imp := importer.New(st, &notify.Writer{W: os.Stderr})
	resource, created, err := imp.Import(cmd.Context(), candidate, importer.Options{
		ImporterID:    user,
		ImporterRole:  role,
		AccessLevel:   types.AccessLevel(access),
		DepartmentIDs: splitFlag(departments),
		CourseIDs:     splitFlag(courses),
		Tags:          splitFlag(tags),
		Level:         level,
	})
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("imported %s (%s)\n", resource.ID, resource.Title)
	} else {
		fmt.Printf("already imported as %s (%s)\n", resource.ID, resource.Title)
	}
	return nil
}

func splitFlag(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	importCmd.Flags().String("title", "", "candidate title")
	importCmd.Flags().String("description", "", "candidate description")
	importCmd.Flags().String("authors", "", "candidate authors (comma-separated)")
	importCmd.Flags().String("published", "", "publication date")
	importCmd.Flags().String("preview-link", "", "preview link")
	importCmd.Flags().String("info-link", "", "info link")
	importCmd.Flags().String("source", "", "provider name (e.g. googleBooks)")
	importCmd.Flags().String("external-id", "", "provider record id")

	importCmd.Flags().String("user", "", "importer user id")
	importCmd.Flags().String("role", "", "importer role (staff imports are auto-approved)")
	importCmd.Flags().String("access", "public", "access level (public|department|course|private)")
	importCmd.Flags().String("departments", "", "department ids (comma-separated)")
	importCmd.Flags().String("courses", "", "course ids (comma-separated)")
	importCmd.Flags().String("tags", "", "tags (comma-separated)")
	importCmd.Flags().Int("level", 0, "numeric level")

	rootCmd.AddCommand(importCmd)
}
