package elastic

// Config carries the connection settings for the history index. Resolved at
// startup and passed to NewClient.
type Config struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
}

const defaultIndex = "repo-search-history"

// RepoDoc is the shape stored for every repository a search returned.
type RepoDoc struct {
	Title     string   `json:"title"`
	ShortDes  string   `json:"short_des"`
	Tags      []string `json:"tags"`
	Stars     int      `json:"stars"`
	URL       string   `json:"url"`
	FetchedAt string   `json:"fetched_at"`
	Score     float64  `json:"score,omitempty"`
}
