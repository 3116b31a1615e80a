package search

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/entity"
)

// Indexer mirrors usuarios into Elasticsearch for the search endpoint. All
// operations are best effort; callers decide whether a failure matters.
type Indexer struct {
	ES    *elasticsearch.Client
	IndexName string
}

func NewIndexer(es *elasticsearch.Client, index string) *Indexer {
	return &Indexer{ES: es, IndexName: index}
}

func (ix *Indexer) Index(ctx context.Context, u *entity.Usuario) error {
	if ix == nil || ix.ES == nil || ix.IndexName == "" {
		return nil
	}
	doc := map[string]any{
		"id":               u.ID(),
		"nombre":           u.Nombre(),
		"apellido_paterno": u.ApellidoPaterno(),
		"apellido_materno": u.ApellidoMaterno(),
		"full_name":        u.FullName(),
		"email":            u.Email().Value(),
		"activo":           u.IsActive(),
		"created_at":       u.CreatedAt().Format(time.RFC3339Nano),
		"updated_at":       u.UpdatedAt().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      ix.IndexName,
		DocumentID: strconv.FormatInt(u.ID(), 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return &esError{status: res.Status()}
	}
	return nil
}

// Search runs a multi_match over name fields and email. Email matches are
// boosted so exact addresses surface first.
func (ix *Indexer) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if ix == nil || ix.ES == nil || ix.IndexName == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "nombre", "apellido_paterno", "apellido_materno", "full_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(c),
		ix.ES.Search.WithIndex(ix.IndexName),
		ix.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

type esError struct {
	status string
}

func (e *esError) Error() string { return "elasticsearch: " + e.status }
