package github

import "time"

// Profile is the canonical, API-shape-independent view of a GitHub user.
// It is constructed fresh per fetch and never mutated afterwards.
type Profile struct {
	User               User           `json:"user"`
	Repositories       []Repository   `json:"repositories"`
	PinnedRepositories []Repository   `json:"pinnedRepositories"`
	Contributions      *Contributions `json:"contributions"` // nil when the source cannot supply it
	Languages          []LanguageStat `json:"languages"`
	Stats              Stats          `json:"stats"`
}

// User holds identity attributes. Fields other than login, avatar, follower
// counts, and timestamps may be absent upstream and are therefore pointers.
type User struct {
	Login           string    `json:"login"`
	Name            *string   `json:"name"`
	Bio             *string   `json:"bio"`
	AvatarURL       string    `json:"avatarUrl"`
	Location        *string   `json:"location"`
	Company         *string   `json:"company"`
	WebsiteURL      *string   `json:"websiteUrl"`
	TwitterUsername *string   `json:"twitterUsername"`
	Email           *string   `json:"email"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Language is a language name with its display color.
type Language struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LanguageSlice is one language's share of a repository in bytes.
// Only the GraphQL path can supply these.
type LanguageSlice struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// Repository describes a single repository as delivered by either API.
type Repository struct {
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	URL             string          `json:"url"`
	HomepageURL     *string         `json:"homepageUrl"`
	Stars           int             `json:"stargazerCount"`
	Forks           int             `json:"forkCount"`
	PrimaryLanguage *Language       `json:"primaryLanguage"`
	Languages       []LanguageSlice `json:"languages,omitempty"` // per-language bytes, GraphQL only
	Private         bool            `json:"isPrivate"`
	Fork            bool            `json:"isFork"`
	Archived        bool            `json:"isArchived"`
	Topics          []string        `json:"topics"`
	PushedAt        time.Time       `json:"pushedAt"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Contributions aggregates a user's contribution activity over the last year.
type Contributions struct {
	TotalCommits        int                    `json:"totalCommitContributions"`
	TotalIssues         int                    `json:"totalIssueContributions"`
	TotalPullRequests   int                    `json:"totalPullRequestContributions"`
	TotalReviews        int                    `json:"totalPullRequestReviewContributions"`
	Calendar            Calendar               `json:"contributionCalendar"`
	External            []ExternalContribution `json:"externalContributions"`
	ExternalPRCount     int                    `json:"externalPRCount"`
	ExternalCommitCount int                    `json:"externalCommitCount"`
}

// Calendar is the daily contribution grid.
type Calendar struct {
	Total int            `json:"totalContributions"`
	Weeks []CalendarWeek `json:"weeks"`
}

// CalendarWeek is one column of the contribution grid.
type CalendarWeek struct {
	Days []CalendarDay `json:"contributionDays"`
}

// CalendarDay is a single day's contribution count.
type CalendarDay struct {
	Date  string `json:"date"`
	Count int    `json:"contributionCount"`
	Color string `json:"color"`
}

// ExternalContribution records activity in a repository the user does not own.
// Entries are keyed by the full repository name; PR and commit counts for the
// same repository are merged into a single entry.
type ExternalContribution struct {
	RepoName    string    `json:"repoName"` // full "owner/name" form
	Owner       string    `json:"owner"`
	PRCount     int       `json:"prCount"`
	CommitCount int       `json:"commitCount"`
	Language    *Language `json:"language"`
	Stars       int       `json:"stargazerCount"`
}

// LanguageStat is one entry of the ranked language breakdown. Percentages
// across a profile's stats always sum to exactly 100.
type LanguageStat struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	Percentage int    `json:"percentage"`
	Size       int    `json:"size"`
}

// Stats holds derived top-line aggregates.
type Stats struct {
	TotalRepos    int `json:"totalRepos"`
	TotalStars    int `json:"totalStars"`
	OriginalStars int `json:"originalStars"` // stars on non-fork repositories
	TotalForks    int `json:"totalForks"`
	Followers     int `json:"followers"`
	Following     int `json:"following"`
	YearsActive   int `json:"yearsActive"` // never below 1
}
