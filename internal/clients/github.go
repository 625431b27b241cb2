package clients

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/go-github/v58/github"
	"go.uber.org/zap"
)

// GitHubClient wraps the GitHub API for developer stats collection.
type GitHubClient struct {
	gh  *github.Client
	log *zap.Logger
}

// NewGitHubClient builds a GitHubClient. An empty token uses unauthenticated
// access with its lower rate limits.
func NewGitHubClient(token string, log *zap.Logger) *GitHubClient {
	if log == nil {
		log = zap.NewNop()
	}
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubClient{gh: client, log: log.Named("github")}
}

// FetchDeveloperStats collects the developer stats document for a user:
// repository and star counts, follower count, PR and issue totals, 30-day
// commit count, language distribution, and top repositories by stars.
func (g *GitHubClient) FetchDeveloperStats(ctx context.Context, username string) (map[string]any, error) {
	user, _, err := g.gh.Users.Get(ctx, username)
	if err != nil {
		return nil, &FetchError{Source: "github", Message: "cannot fetch user", Cause: err}
	}

	repos, err := g.listAllRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	totalStars := 0
	languageBytes := map[string]int{}
	type repoStars struct {
		Name  string
		Stars int
	}
	var ranked []repoStars
	for _, repo := range repos {
		if repo.GetFork() {
			continue
		}
		totalStars += repo.GetStargazersCount()
		if lang := repo.GetLanguage(); lang != "" {
			languageBytes[lang] += repo.GetSize()
		}
		ranked = append(ranked, repoStars{repo.GetName(), repo.GetStargazersCount()})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Stars > ranked[j].Stars })
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	topRepos := make([]map[string]any, 0, len(ranked))
	for _, r := range ranked {
		topRepos = append(topRepos, map[string]any{"name": r.Name, "value": r.Stars})
	}

	totalBytes := 0
	for _, size := range languageBytes {
		totalBytes += size
	}
	languages := map[string]any{}
	if totalBytes > 0 {
		for lang, size := range languageBytes {
			languages[lang] = float64(size) / float64(totalBytes) * 100
		}
	}

	prsOpened := g.searchCount(ctx, fmt.Sprintf("author:%s type:pr", username))
	prsMerged := g.searchCount(ctx, fmt.Sprintf("author:%s type:pr is:merged", username))
	issuesOpened := g.searchCount(ctx, fmt.Sprintf("author:%s type:issue", username))
	commits30d := g.commitCount(ctx, username, 30)

	doc := map[string]any{
		"username":  username,
		"name":      user.GetName(),
		"repos":     user.GetPublicRepos(),
		"stars":     totalStars,
		"followers": user.GetFollowers(),
		"prs": map[string]any{
			"opened": prsOpened,
			"merged": prsMerged,
		},
		"issues": map[string]any{
			"opened": issuesOpened,
		},
		"commit_activity": map[string]any{
			"total_30_days": commits30d,
		},
		"languages":        languages,
		"top_repositories": topRepos,
		"updated_at":       nowISO(),
	}

	g.log.Info("fetched developer stats",
		zap.String("username", username),
		zap.Int("repos", user.GetPublicRepos()),
		zap.Int("stars", totalStars))
	return doc, nil
}

func (g *GitHubClient) listAllRepos(ctx context.Context, username string) ([]*github.Repository, error) {
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var all []*github.Repository
	for {
		repos, resp, err := g.gh.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, &FetchError{Source: "github", Message: "cannot list repositories", Cause: err}
		}
		all = append(all, repos...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// searchCount returns the total hit count for an issue search. Searches are
// best-effort enrichment; failures log and report zero.
func (g *GitHubClient) searchCount(ctx context.Context, query string) int {
	result, _, err := g.gh.Search.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		g.log.Warn("issue search failed", zap.String("query", query), zap.Error(err))
		return 0
	}
	return result.GetTotal()
}

func (g *GitHubClient) commitCount(ctx context.Context, username string, days int) int {
	since := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
	query := fmt.Sprintf("author:%s author-date:>=%s", username, since)
	result, _, err := g.gh.Search.Commits(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		g.log.Warn("commit search failed", zap.String("query", query), zap.Error(err))
		return 0
	}
	return result.GetTotal()
}
