package github

import "time"

// profileQuery is the GraphQL document for the rich profile fetch. It pulls
// everything the canonical profile needs in a single round trip: identity,
// the top 100 public repositories by stars, pinned items, and the full
// contributions collection including per-repository breakdowns.
const profileQuery = `
query GetUserProfile($username: String!) {
  user(login: $username) {
    login
    name
    bio
    avatarUrl
    location
    company
    websiteUrl
    twitterUsername
    email
    followers { totalCount }
    following { totalCount }
    createdAt
    updatedAt
    repositories(first: 100, orderBy: {field: STARGAZERS, direction: DESC}, privacy: PUBLIC) {
      totalCount
      nodes {
        name
        description
        url
        homepageUrl
        stargazerCount
        forkCount
        primaryLanguage { name color }
        languages(first: 10) {
          edges {
            size
            node { name color }
          }
        }
        isPrivate
        isFork
        isArchived
        repositoryTopics(first: 10) {
          nodes { topic { name } }
        }
        pushedAt
        createdAt
      }
    }
    pinnedItems(first: 6, types: REPOSITORY) {
      nodes {
        ... on Repository {
          name
          description
          url
          homepageUrl
          stargazerCount
          forkCount
          primaryLanguage { name color }
          languages(first: 10) {
            edges {
              size
              node { name color }
            }
          }
          isPrivate
          isFork
          isArchived
          repositoryTopics(first: 10) {
            nodes { topic { name } }
          }
          pushedAt
          createdAt
        }
      }
    }
    contributionsCollection {
      totalCommitContributions
      totalIssueContributions
      totalPullRequestContributions
      totalPullRequestReviewContributions
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
            color
          }
        }
      }
      pullRequestContributionsByRepository(maxRepositories: 100) {
        repository {
          nameWithOwner
          owner { login }
          primaryLanguage { name color }
          stargazerCount
        }
        contributions { totalCount }
      }
      commitContributionsByRepository(maxRepositories: 100) {
        repository {
          nameWithOwner
          owner { login }
          primaryLanguage { name color }
          stargazerCount
        }
        contributions { totalCount }
      }
    }
  }
}
`

type graphqlEnvelope struct {
	Data   *graphqlData   `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlData struct {
	User *graphqlUser `json:"user"`
}

type totalCount struct {
	TotalCount int `json:"totalCount"`
}

type graphqlUser struct {
	Login           string     `json:"login"`
	Name            *string    `json:"name"`
	Bio             *string    `json:"bio"`
	AvatarURL       string     `json:"avatarUrl"`
	Location        *string    `json:"location"`
	Company         *string    `json:"company"`
	WebsiteURL      *string    `json:"websiteUrl"`
	TwitterUsername *string    `json:"twitterUsername"`
	Email           *string    `json:"email"`
	Followers       totalCount `json:"followers"`
	Following       totalCount `json:"following"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	Repositories struct {
		TotalCount int           `json:"totalCount"`
		Nodes      []graphqlRepo `json:"nodes"`
	} `json:"repositories"`

	PinnedItems struct {
		Nodes []graphqlRepo `json:"nodes"`
	} `json:"pinnedItems"`

	ContributionsCollection graphqlContributions `json:"contributionsCollection"`
}

type graphqlLanguage struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type graphqlRepo struct {
	Name            string           `json:"name"`
	Description     *string          `json:"description"`
	URL             string           `json:"url"`
	HomepageURL     *string          `json:"homepageUrl"`
	StargazerCount  int              `json:"stargazerCount"`
	ForkCount       int              `json:"forkCount"`
	PrimaryLanguage *graphqlLanguage `json:"primaryLanguage"`

	Languages struct {
		Edges []struct {
			Size int             `json:"size"`
			Node graphqlLanguage `json:"node"`
		} `json:"edges"`
	} `json:"languages"`

	IsPrivate  bool `json:"isPrivate"`
	IsFork     bool `json:"isFork"`
	IsArchived bool `json:"isArchived"`

	RepositoryTopics struct {
		Nodes []struct {
			Topic struct {
				Name string `json:"name"`
			} `json:"topic"`
		} `json:"nodes"`
	} `json:"repositoryTopics"`

	PushedAt  time.Time `json:"pushedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type graphqlContributions struct {
	TotalCommitContributions            int             `json:"totalCommitContributions"`
	TotalIssueContributions             int             `json:"totalIssueContributions"`
	TotalPullRequestContributions       int             `json:"totalPullRequestContributions"`
	TotalPullRequestReviewContributions int             `json:"totalPullRequestReviewContributions"`
	ContributionCalendar                graphqlCalendar `json:"contributionCalendar"`

	PullRequestContributionsByRepository []graphqlRepoContribution `json:"pullRequestContributionsByRepository"`
	CommitContributionsByRepository      []graphqlRepoContribution `json:"commitContributionsByRepository"`
}

type graphqlCalendar struct {
	TotalContributions int `json:"totalContributions"`
	Weeks              []struct {
		ContributionDays []struct {
			Date              string `json:"date"`
			ContributionCount int    `json:"contributionCount"`
			Color             string `json:"color"`
		} `json:"contributionDays"`
	} `json:"weeks"`
}

type graphqlRepoContribution struct {
	Repository struct {
		NameWithOwner string `json:"nameWithOwner"`
		Owner         struct {
			Login string `json:"login"`
		} `json:"owner"`
		PrimaryLanguage *graphqlLanguage `json:"primaryLanguage"`
		StargazerCount  int              `json:"stargazerCount"`
	} `json:"repository"`
	Contributions totalCount `json:"contributions"`
}
