// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/campusware/unihub/internal/provider"
	"github.com/campusware/unihub/pkg/types"
)

// LocalStore is the slice of the resource store the engine depends on.
type LocalStore interface {
	FindResources(ctx context.Context, filter types.ResourceFilter, page, limit int) ([]types.Resource, int, error)
}

// Engine coordinates one fan-out search across the local store and the
// configured external providers.
type Engine struct {
	store     LocalStore
	providers []provider.Provider
	cfg       types.SearchConfig
}

// New builds an engine over the given store and providers.
func New(store LocalStore, providers []provider.Provider, cfg types.SearchConfig) *Engine {
	return &Engine{store: store, providers: providers, cfg: cfg}
}

// ProviderNames returns the names of the configured providers.
func (e *Engine) ProviderNames() []string {
	names := make([]string, len(e.providers))
	for i, p := range e.providers {
		names[i] = p.Name()
	}
	return names
}

// Search dispatches the request to every effective source concurrently and
// waits for all of them to settle before composing the envelope. Each
// provider call is isolated: an error or timeout in one becomes an empty
// candidate list and a warning, never a request failure, and never
// disturbs its siblings. A local store failure is fatal because the local
// page is the system of record. Warnings are also written to w as they
// are collected.
func (e *Engine) Search(ctx context.Context, req Request, w io.Writer) (*types.SearchResult, error) {
	effective, err := selectSources(req, e.ProviderNames())
	if err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = e.cfg.DefaultLimit
	}
	if limit < 1 {
		limit = 10
	}

	dispatched := e.selectProviders(effective)

	type localOutcome struct {
		items []types.Resource
		total int
		err   error
	}
	type providerOutcome struct {
		name       string
		candidates []types.Candidate
		err        error
	}

	localCh := make(chan localOutcome, 1)
	go func() {
		items, total, err := e.store.FindResources(ctx, req.Filter(), page, limit)
		localCh <- localOutcome{items: items, total: total, err: err}
	}()

	maxExternal := e.cfg.MaxExternalResults
	if maxExternal < 1 {
		maxExternal = 10
	}
	timeout := e.cfg.ProviderTimeout

	ch := make(chan providerOutcome, len(dispatched))
	var wg sync.WaitGroup
	for _, p := range dispatched {
		wg.Add(1)
		go func(p provider.Provider) {
			defer wg.Done()
			pctx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				pctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			candidates, err := p.Search(pctx, req.Query, maxExternal)
			ch <- providerOutcome{name: p.Name(), candidates: candidates, err: err}
		}(p)
	}
	go func() {
		wg.Wait()
		close(ch)
	}()

	// Join barrier: every dispatched call settles before the envelope is
	// composed.
	external := make(map[string][]types.Candidate, len(dispatched))
	var warnings []string
	for out := range ch {
		if out.err != nil {
			msg := fmt.Sprintf("%s: %v", out.name, out.err)
			warnings = append(warnings, msg)
			fmt.Fprintf(w, "warning: provider %s failed: %v\n", out.name, out.err)
			external[out.name] = []types.Candidate{}
			continue
		}
		if len(out.candidates) > maxExternal {
			out.candidates = out.candidates[:maxExternal]
		}
		if out.candidates == nil {
			out.candidates = []types.Candidate{}
		}
		external[out.name] = out.candidates
	}

	local := <-localCh
	if local.err != nil {
		return nil, fmt.Errorf("local resource query: %w", local.err)
	}

	// A cancelled request never returns a partial join.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	externalCount := 0
	for _, candidates := range external {
		externalCount += len(candidates)
	}

	if local.items == nil {
		local.items = []types.Resource{}
	}

	return &types.SearchResult{
		Counts: types.SearchCounts{
			Local:    local.total,
			External: externalCount,
		},
		Pagination: types.Pagination{
			Page:  page,
			Limit: limit,
			Pages: (local.total + limit - 1) / limit,
		},
		Data: types.SearchData{
			Local:    local.items,
			External: external,
		},
		Warnings: warnings,
	}, nil
}

// selectProviders maps the effective source list back to provider
// instances, skipping the local entry.
func (e *Engine) selectProviders(effective []string) []provider.Provider {
	byName := make(map[string]provider.Provider, len(e.providers))
	for _, p := range e.providers {
		byName[p.Name()] = p
	}

	var selected []provider.Provider
	for _, name := range effective {
		if name == types.SourceLocal {
			continue
		}
		if p, ok := byName[name]; ok {
			selected = append(selected, p)
		}
	}
	return selected
}
