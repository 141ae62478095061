package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"

	"github.com/fwojciec/errscrape"
	"golang.org/x/sync/errgroup"
)

var _ Layout = (*LinkIndexLayout)(nil)

// LinkIndexLayout reads an index page whose navigation panel links to one
// page per error class. Each linked page is fetched and its last
// description list becomes a group named after the link label.
type LinkIndexLayout struct {
	provider    errscrape.ProviderID
	panelClass  string
	panelIndex  int
	prefix      string
	fetcher     errscrape.Fetcher
	parser      errscrape.Parser
	limiter     errscrape.DomainLimiter
	logger      *slog.Logger
	strict      bool
	concurrency int
}

// Kind returns errscrape.LayoutLinkIndex.
func (l *LinkIndexLayout) Kind() errscrape.LayoutKind { return errscrape.LayoutLinkIndex }

func (l *LinkIndexLayout) sealed() {}

// linkResult holds the outcome of one linked page.
type linkResult struct {
	group errscrape.Group
	err   error
}

// Extract follows every link of the navigation panel. Groups appear in link
// order regardless of the order in which pages finish loading.
//
// A linked page that cannot be fetched or read is logged and skipped, unless
// the layout is strict, in which case the first failure aborts the run. If
// every linked page fails, Extract returns EEXTRACT.
func (l *LinkIndexLayout) Extract(ctx context.Context, doc errscrape.Document) (*errscrape.Dataset, error) {
	panels := doc.FindAll("div", errscrape.Class(l.panelClass))
	if len(panels) <= l.panelIndex {
		return nil, errscrape.Errorf(errscrape.ESTRUCTURE, "found %d %q panels, need panel %d", len(panels), l.panelClass, l.panelIndex)
	}

	links := errscrape.ExtractLinks(panels[l.panelIndex])
	if len(links) == 0 {
		return nil, errscrape.Errorf(errscrape.EEXTRACT, "navigation panel has no links")
	}

	results, err := l.extractAll(ctx, links)
	if err != nil {
		return nil, err
	}

	var groups []errscrape.Group
	for i, r := range results {
		if r.err != nil {
			l.logger.Warn("skipping linked page",
				"link", links[i].Href,
				"label", links[i].Label,
				"err", r.err,
			)
			continue
		}
		groups = append(groups, r.group)
	}

	if len(groups) == 0 {
		return nil, errscrape.Errorf(errscrape.EEXTRACT, "all %d linked pages failed", len(links))
	}

	return &errscrape.Dataset{Provider: l.provider, Groups: groups}, nil
}

func (l *LinkIndexLayout) extractAll(ctx context.Context, links []errscrape.Link) ([]linkResult, error) {
	results := make([]linkResult, len(links))

	if l.concurrency < 2 {
		for i, link := range links {
			group, err := l.extractLink(ctx, link)
			if err != nil && l.strict {
				return nil, err
			}
			results[i] = linkResult{group: group, err: err}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, link := range links {
		g.Go(func() error {
			group, err := l.extractLink(gctx, link)
			if err != nil && l.strict {
				return err
			}
			results[i] = linkResult{group: group, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// extractLink fetches one linked page and reads its last description list.
func (l *LinkIndexLayout) extractLink(ctx context.Context, link errscrape.Link) (errscrape.Group, error) {
	target, err := l.resolve(link.Href)
	if err != nil {
		return errscrape.Group{}, errscrape.Errorf(errscrape.EEXTRACT, "invalid link %q: %v", link.Href, err)
	}

	if l.limiter != nil {
		if err := l.limiter.Wait(ctx, target.Host); err != nil {
			return errscrape.Group{}, err
		}
	}

	html, err := l.fetcher.Fetch(ctx, target.String())
	if err != nil {
		return errscrape.Group{}, fmt.Errorf("linked page %q: %w", link.Label, err)
	}

	page, err := l.parser.Parse(html)
	if err != nil {
		return errscrape.Group{}, fmt.Errorf("linked page %q: %w", link.Label, err)
	}

	lists := page.FindAll("dl")
	if len(lists) == 0 {
		return errscrape.Group{}, errscrape.Errorf(errscrape.ESTRUCTURE, "linked page %q has no description list", link.Label)
	}

	records, err := errscrape.ExtractDescriptionList(lists[len(lists)-1])
	if err != nil {
		return errscrape.Group{}, fmt.Errorf("linked page %q: %w", link.Label, err)
	}

	name := errscrape.GroupName(link.Label)
	if name == "" {
		name = path.Base(target.Path)
	}

	return errscrape.Group{Name: name, Records: records}, nil
}

// resolve resolves href against the configured link prefix.
func (l *LinkIndexLayout) resolve(href string) (*url.URL, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return nil, err
	}
	if l.prefix == "" {
		return ref, nil
	}
	base, err := url.Parse(l.prefix)
	if err != nil {
		return nil, err
	}
	return base.ResolveReference(ref), nil
}
