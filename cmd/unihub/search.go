// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campusware/unihub/internal/discovery"
	"github.com/campusware/unihub/internal/provider"
	"github.com/campusware/unihub/internal/store"
	"github.com/campusware/unihub/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog and external providers",
	Long: `Search queries the local resource catalog and the configured external
providers (Google Books, OpenAlex, arXiv) concurrently. Without a free-text
query only the local catalog is searched.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := portalConfig()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	resourceType, _ := cmd.Flags().GetString("type")
	level, _ := cmd.Flags().GetInt("level")
	department, _ := cmd.Flags().GetString("department")
	course, _ := cmd.Flags().GetString("course")
	sourcesFlag, _ := cmd.Flags().GetString("sources")
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	var sources []string
	if sourcesFlag != "" {
		sources = strings.Split(sourcesFlag, ",")
	}

	engine := discovery.New(st, provider.Configured(httpClient(cfg.Search), cfg.Search), cfg.Search)
	result, err := engine.Search(cmd.Context(), discovery.Request{
		Query:        queryText,
		Type:         types.ResourceType(resourceType),
		Level:        level,
		DepartmentID: department,
		CourseID:     course,
		Sources:      sources,
		Page:         page,
		Limit:        limit,
	}, os.Stderr)
	if err != nil {
		return err
	}

	if asJSON {
		return discovery.FormatJSON(result, os.Stdout)
	}
	discovery.FormatTable(result, os.Stdout)
	return nil
}

func init() {
	searchCmd.Flags().String("query", "", "free-text query")
	searchCmd.Flags().String("type", "", "filter by resource type (document|link|video|image|other)")
	searchCmd.Flags().Int("level", 0, "filter by numeric level")
	searchCmd.Flags().String("department", "", "filter by department id")
	searchCmd.Flags().String("course", "", "filter by course id")
	searchCmd.Flags().String("sources", "", "sources to query (comma-separated; default: all)")
	searchCmd.Flags().Int("page", 1, "local result page")
	searchCmd.Flags().Int("limit", 10, "local page size")
	searchCmd.Flags().Bool("json", false, "output the envelope as JSON")

	rootCmd.AddCommand(searchCmd)
}
