package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"

	"github-repo-search/internal/search"
)

// Client records returned repositories into an Elasticsearch index and
// serves full-text lookups over them. Entirely optional: the search flow
// works without it.
type Client struct {
	es    *elasticsearch.Client
	index string
}

func NewClient(cfg Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Elasticsearch client: %w", err)
	}

	index := cfg.Index
	if index == "" {
		index = defaultIndex
	}

	return &Client{es: es, index: index}, nil
}

// Record indexes one document per repository. Document IDs are derived from
// the repository URL, so re-searching overwrites instead of duplicating.
func (c *Client) Record(ctx context.Context, items []search.RepoSummary) error {
	fetchedAt := time.Now().Format("2006-01-02")

	for _, item := range items {
		doc := RepoDoc{
			Title:     item.FullName,
			ShortDes:  item.Description,
			Tags:      item.Topics,
			Stars:     item.Stars,
			URL:       item.URL,
			FetchedAt: fetchedAt,
		}

		jsonBody, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal failed: %w", err)
		}

		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(item.URL)).String()
		resp, err := c.es.Index(
			c.index,
			bytes.NewReader(jsonBody),
			c.es.Index.WithDocumentID(id),
			c.es.Index.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("index failed: %w", err)
		}
		if resp.IsError() {
			resp.Body.Close()
			return fmt.Errorf("index error: %s", resp.String())
		}
		resp.Body.Close()
	}
	return nil
}

// SearchHistory runs a full-text query over the recorded repositories.
func (c *Client) SearchHistory(ctx context.Context, query string, top int) ([]RepoDoc, error) {
	var buf bytes.Buffer
	searchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^3", "short_des", "tags"},
			},
		},
		"size": top,
	}

	if err := json.NewEncoder(&buf).Encode(searchQuery); err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("search error: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hitsMap, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid response format: missing 'hits'")
	}

	hitArray, ok := hitsMap["hits"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid response format: missing 'hits.hits'")
	}

	var results []RepoDoc
	for _, hit := range hitArray {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}

		source, ok := hitMap["_source"]
		if !ok {
			continue
		}

		score, _ := hitMap["_score"].(float64)

		data, err := json.Marshal(source)
		if err != nil {
			continue
		}

		var doc RepoDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}

		doc.Score = score
		results = append(results, doc)
	}

	return results, nil
}
