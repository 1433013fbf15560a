package github

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/go-github/v82/github"

	"hybridctl/internal/cache"
)

// CacheKey is the fixed key contributors live under in the local cache.
const CacheKey = "contributors"

// Contributor is the Info tab's view of a project contributor.
type Contributor struct {
	Login         string `json:"login"`
	Name          string `json:"name,omitempty"`
	Bio           string `json:"bio,omitempty"`
	AvatarURL     string `json:"avatar_url"`
	URL           string `json:"url"`
	Contributions int    `json:"contributions"`
}

// Fetcher lists a repository's contributors. Bot accounts are dropped, the
// rest are sorted by contribution count, and the top entries get best-effort
// profile enrichment (display name, bio).
type Fetcher struct {
	client      *github.Client
	owner       string
	repo        string
	detailLimit int
}

// NewFetcher builds a fetcher for owner/repo. An empty token means anonymous
// access, which is fine for public repositories at this call volume.
func NewFetcher(owner, repo, token string) *Fetcher {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Fetcher{client: client, owner: owner, repo: repo, detailLimit: 12}
}

// Fetch returns the filtered, sorted, enriched contributor list.
func (f *Fetcher) Fetch(ctx context.Context) ([]Contributor, error) {
	listOpts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []*github.Contributor
	for {
		contributors, resp, err := f.client.Repositories.ListContributors(ctx, f.owner, f.repo, listOpts)
		if err != nil {
			return nil, fmt.Errorf("list contributors for %s/%s: %w", f.owner, f.repo, err)
		}
		all = append(all, contributors...)
		if resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}

	out := make([]Contributor, 0, len(all))
	for _, c := range all {
		if isBot(c.GetType(), c.GetLogin()) {
			continue
		}
		out = append(out, Contributor{
			Login:         c.GetLogin(),
			AvatarURL:     c.GetAvatarURL(),
			URL:           c.GetHTMLURL(),
			Contributions: c.GetContributions(),
		})
	}
	sortByContributions(out)

	f.enrich(ctx, out)
	return out, nil
}

// enrich resolves profile details for the top entries concurrently. Failures
// leave the basic record in place; one bad profile never spoils the batch.
func (f *Fetcher) enrich(ctx context.Context, list []Contributor) {
	n := len(list)
	if n > f.detailLimit {
		n = f.detailLimit
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			user, _, err := f.client.Users.Get(ctx, list[i].Login)
			if err != nil {
				return
			}
			list[i].Name = user.GetName()
			list[i].Bio = user.GetBio()
		}(i)
	}
	wg.Wait()
}

// isBot applies the type flag plus the login convention GitHub uses for
// machine accounts.
func isBot(accType, login string) bool {
	if accType == "Bot" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(login), "[bot]")
}

func sortByContributions(list []Contributor) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Contributions != list[j].Contributions {
			return list[i].Contributions > list[j].Contributions
		}
		return list[i].Login < list[j].Login
	})
}

// Service answers contributor requests through the local TTL cache so a
// revisit inside the freshness window never re-issues the network call.
type Service struct {
	fetcher *Fetcher
	store   *cache.Store
}

func NewService(fetcher *Fetcher, store *cache.Store) *Service {
	return &Service{fetcher: fetcher, store: store}
}

// Contributors returns the list and whether it came from cache.
func (s *Service) Contributors(ctx context.Context) ([]Contributor, bool, error) {
	if s.store != nil {
		var cached []Contributor
		if ok, err := s.store.Get(CacheKey, &cached); err == nil && ok {
			return cached, true, nil
		}
	}

	list, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	if s.store != nil {
		// Cache write failures are not worth failing the render over.
		_ = s.store.Put(CacheKey, list)
	}
	return list, false, nil
}
