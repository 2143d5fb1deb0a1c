package github

import (
	"math"
	"sort"
	"strings"
	"time"
)

const maxPinned = 6

// normalizeGraphQL maps the rich GraphQL response onto the canonical profile.
func normalizeGraphQL(user *graphqlUser, now time.Time) *Profile {
	repositories := make([]Repository, 0, len(user.Repositories.Nodes))
	for _, node := range user.Repositories.Nodes {
		repositories = append(repositories, fromGraphQLRepo(node))
	}

	pinned := make([]Repository, 0, len(user.PinnedItems.Nodes))
	for _, node := range user.PinnedItems.Nodes {
		pinned = append(pinned, fromGraphQLRepo(node))
	}

	originalRepos := withoutForks(repositories)
	if len(pinned) == 0 {
		pinned = firstN(originalRepos, maxPinned)
	}

	external, prTotal, commitTotal := externalContributions(user.ContributionsCollection, user.Login)

	cc := user.ContributionsCollection
	contributions := &Contributions{
		TotalCommits:        cc.TotalCommitContributions,
		TotalIssues:         cc.TotalIssueContributions,
		TotalPullRequests:   cc.TotalPullRequestContributions,
		TotalReviews:        cc.TotalPullRequestReviewContributions,
		Calendar:            fromGraphQLCalendar(cc.ContributionCalendar),
		External:            external,
		ExternalPRCount:     prTotal,
		ExternalCommitCount: commitTotal,
	}

	totalStars, originalStars, totalForks := starForkSums(repositories)

	return &Profile{
		User: User{
			Login:           user.Login,
			Name:            user.Name,
			Bio:             user.Bio,
			AvatarURL:       user.AvatarURL,
			Location:        user.Location,
			Company:         user.Company,
			WebsiteURL:      user.WebsiteURL,
			TwitterUsername: user.TwitterUsername,
			Email:           user.Email,
			Followers:       user.Followers.TotalCount,
			Following:       user.Following.TotalCount,
			CreatedAt:       user.CreatedAt,
			UpdatedAt:       user.UpdatedAt,
		},
		Repositories:       repositories,
		PinnedRepositories: pinned,
		Contributions:      contributions,
		Languages:          languageStats(originalRepos),
		Stats: Stats{
			TotalRepos:    user.Repositories.TotalCount,
			TotalStars:    totalStars,
			OriginalStars: originalStars,
			TotalForks:    totalForks,
			Followers:     user.Followers.TotalCount,
			Following:     user.Following.TotalCount,
			YearsActive:   yearsActive(user.CreatedAt, now),
		},
	}
}

// normalizeREST maps the simple REST responses onto the canonical profile.
// Per-language byte breakdowns, pinned items, and contribution data do not
// exist on this path: language stats fall back to primary-language repo
// counts, pinned repositories default to the first non-forks, and the
// contributions field stays nil.
func normalizeREST(user *restUser, repos []restRepo, now time.Time) *Profile {
	repositories := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if r.Private {
			continue
		}
		repositories = append(repositories, fromRESTRepo(r))
	}

	originalRepos := withoutForks(repositories)
	totalStars, originalStars, totalForks := starForkSums(repositories)

	return &Profile{
		User: User{
			Login:           user.Login,
			Name:            user.Name,
			Bio:             user.Bio,
			AvatarURL:       user.AvatarURL,
			Location:        user.Location,
			Company:         user.Company,
			WebsiteURL:      user.Blog,
			TwitterUsername: user.TwitterUsername,
			Email:           user.Email,
			Followers:       user.Followers,
			Following:       user.Following,
			CreatedAt:       user.CreatedAt,
			UpdatedAt:       user.UpdatedAt,
		},
		Repositories:       repositories,
		PinnedRepositories: firstN(originalRepos, maxPinned),
		Contributions:      nil,
		Languages:          languageStats(originalRepos),
		Stats: Stats{
			TotalRepos:    user.PublicRepos,
			TotalStars:    totalStars,
			OriginalStars: originalStars,
			TotalForks:    totalForks,
			Followers:     user.Followers,
			Following:     user.Following,
			YearsActive:   yearsActive(user.CreatedAt, now),
		},
	}
}

func fromGraphQLRepo(node graphqlRepo) Repository {
	var slices []LanguageSlice
	for _, edge := range node.Languages.Edges {
		slices = append(slices, LanguageSlice{
			Name:  edge.Node.Name,
			Color: edge.Node.Color,
			Size:  edge.Size,
		})
	}

	topics := make([]string, 0, len(node.RepositoryTopics.Nodes))
	for _, t := range node.RepositoryTopics.Nodes {
		topics = append(topics, t.Topic.Name)
	}

	var primary *Language
	if node.PrimaryLanguage != nil {
		primary = &Language{Name: node.PrimaryLanguage.Name, Color: node.PrimaryLanguage.Color}
	}

	return Repository{
		Name:            node.Name,
		Description:     node.Description,
		URL:             node.URL,
		HomepageURL:     node.HomepageURL,
		Stars:           node.StargazerCount,
		Forks:           node.ForkCount,
		PrimaryLanguage: primary,
		Languages:       slices,
		Private:         node.IsPrivate,
		Fork:            node.IsFork,
		Archived:        node.IsArchived,
		Topics:          topics,
		PushedAt:        node.PushedAt,
		CreatedAt:       node.CreatedAt,
	}
}

func fromRESTRepo(r restRepo) Repository {
	var primary *Language
	if r.Language != nil {
		primary = &Language{Name: *r.Language, Color: languageColor(*r.Language)}
	}

	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}

	return Repository{
		Name:            r.Name,
		Description:     r.Description,
		URL:             r.HTMLURL,
		HomepageURL:     r.Homepage,
		Stars:           r.StargazersCount,
		Forks:           r.ForksCount,
		PrimaryLanguage: primary,
		Private:         r.Private,
		Fork:            r.Fork,
		Archived:        r.Archived,
		Topics:          topics,
		PushedAt:        r.PushedAt,
		CreatedAt:       r.CreatedAt,
	}
}

func fromGraphQLCalendar(cal graphqlCalendar) Calendar {
	weeks := make([]CalendarWeek, 0, len(cal.Weeks))
	for _, w := range cal.Weeks {
		days := make([]CalendarDay, 0, len(w.ContributionDays))
		for _, d := range w.ContributionDays {
			days = append(days, CalendarDay{Date: d.Date, Count: d.ContributionCount, Color: d.Color})
		}
		weeks = append(weeks, CalendarWeek{Days: days})
	}
	return Calendar{Total: cal.TotalContributions, Weeks: weeks}
}

// externalContributions reduces the per-repository PR and commit breakdowns
// into merged entries for repositories the user does not own. Records for the
// same full repository name accumulate into one entry; ownership comparison
// is case-insensitive. Results are sorted by combined activity, descending.
func externalContributions(cc graphqlContributions, login string) (entries []ExternalContribution, prTotal, commitTotal int) {
	self := strings.ToLower(login)
	byRepo := make(map[string]*ExternalContribution)

	add := func(rc graphqlRepoContribution, prs, commits int) {
		if strings.ToLower(rc.Repository.Owner.Login) == self {
			return
		}
		key := rc.Repository.NameWithOwner
		entry, ok := byRepo[key]
		if !ok {
			var lang *Language
			if rc.Repository.PrimaryLanguage != nil {
				lang = &Language{Name: rc.Repository.PrimaryLanguage.Name, Color: rc.Repository.PrimaryLanguage.Color}
			}
			entry = &ExternalContribution{
				RepoName: key,
				Owner:    rc.Repository.Owner.Login,
				Language: lang,
				Stars:    rc.Repository.StargazerCount,
			}
			byRepo[key] = entry
		}
		entry.PRCount += prs
		entry.CommitCount += commits
	}

	for _, rc := range cc.PullRequestContributionsByRepository {
		add(rc, rc.Contributions.TotalCount, 0)
	}
	for _, rc := range cc.CommitContributionsByRepository {
		add(rc, 0, rc.Contributions.TotalCount)
	}

	entries = make([]ExternalContribution, 0, len(byRepo))
	for _, e := range byRepo {
		entries = append(entries, *e)
		prTotal += e.PRCount
		commitTotal += e.CommitCount
	}
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].PRCount+entries[i].CommitCount, entries[j].PRCount+entries[j].CommitCount
		if ti != tj {
			return ti > tj
		}
		return entries[i].RepoName < entries[j].RepoName
	})
	return entries, prTotal, commitTotal
}

// yearsActive reports full years since account creation, never below 1.
func yearsActive(createdAt, now time.Time) int {
	years := now.Sub(createdAt).Hours() / (24 * 365)
	if rounded := int(math.Round(years)); rounded > 1 {
		return rounded
	}
	return 1
}

func withoutForks(repos []Repository) []Repository {
	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if !r.Fork {
			out = append(out, r)
		}
	}
	return out
}

func firstN(repos []Repository, n int) []Repository {
	if len(repos) > n {
		return repos[:n]
	}
	return repos
}

func starForkSums(repos []Repository) (totalStars, originalStars, totalForks int) {
	for _, r := range repos {
		totalStars += r.Stars
		totalForks += r.Forks
		if !r.Fork {
			originalStars += r.Stars
		}
	}
	return totalStars, originalStars, totalForks
}
