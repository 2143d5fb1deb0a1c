package github

import "time"

// REST API response shapes for /users/{login}, /users/{login}/repos, and
// /rate_limit. Field coverage is limited to what the normalizer consumes.

type restUser struct {
	Login           string    `json:"login"`
	Name            *string   `json:"name"`
	Bio             *string   `json:"bio"`
	AvatarURL       string    `json:"avatar_url"`
	Location        *string   `json:"location"`
	Company         *string   `json:"company"`
	Blog            *string   `json:"blog"`
	TwitterUsername *string   `json:"twitter_username"`
	Email           *string   `json:"email"`
	PublicRepos     int       `json:"public_repos"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type restRepo struct {
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Homepage        *string   `json:"homepage"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Language        *string   `json:"language"`
	Private         bool      `json:"private"`
	Fork            bool      `json:"fork"`
	Archived        bool      `json:"archived"`
	Topics          []string  `json:"topics"`
	PushedAt        time.Time `json:"pushed_at"`
	CreatedAt       time.Time `json:"created_at"`
}

type restRateLimit struct {
	Resources struct {
		Core struct {
			Remaining int   `json:"remaining"`
			Reset     int64 `json:"reset"`
		} `json:"core"`
	} `json:"resources"`
}
