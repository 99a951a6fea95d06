// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/campusware/unihub/pkg/types"
)

// FormatTable writes the envelope as human-readable tables: the local page
// first, then one capped candidate list per provider.
func FormatTable(res *types.SearchResult, w io.Writer) {
	fmt.Fprintf(w, "Local resources (%d total, page %d/%d):\n",
		res.Counts.Local, res.Pagination.Page, max(res.Pagination.Pages, 1))

	if len(res.Data.Local) == 0 {
		fmt.Fprintln(w, "  none")
	} else {
		fmt.Fprintf(w, "  %-40s  %-10s  %-6s  %s\n", "Title", "Type", "Rating", "Link")
		for _, r := range res.Data.Local {
			fmt.Fprintf(w, "  %-40s  %-10s  %-6.1f  %s\n",
				truncate(r.Title, 40), r.Type, r.AverageRating, r.Link())
		}
	}

	names := make([]string, 0, len(res.Data.External))
	for name := range res.Data.External {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		candidates := res.Data.External[name]
		fmt.Fprintf(w, "\n%s (%d):\n", name, len(candidates))
		if len(candidates) == 0 {
			fmt.Fprintln(w, "  none")
			continue
		}
		for _, c := range candidates {
			fmt.Fprintf(w, "  %-40s  %-24s  %s\n",
				truncate(c.Title, 40), truncate(formatAuthors(c.Authors), 24), c.BestLink())
		}
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintf(w, "\nwarnings: %s\n", strings.Join(res.Warnings, "; "))
	}
}

// FormatJSON writes the envelope as indented JSON.
func FormatJSON(res *types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
