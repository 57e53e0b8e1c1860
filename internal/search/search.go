// Package search maintains the elasticsearch dish index and serves the
// storefront's free-text menu search. The index is rebuilt from postgres at
// startup and kept current by catalog writes; the database stays the source
// of truth.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/masalakitchen/storefront/internal/models"
)

const DishIndex = "dishes"

type DishDoc struct {
	ID            uuid.UUID `json:"id"`
	Slug          string    `json:"slug"`
	NameEn        string    `json:"name_en"`
	NameNl        string    `json:"name_nl"`
	NameFr        string    `json:"name_fr"`
	DescriptionEn string    `json:"description_en"`
	DescriptionNl string    `json:"description_nl"`
	DescriptionFr string    `json:"description_fr"`
	Price         float64   `json:"price"`
	IsActive      bool      `json:"is_active"`
}

type Index struct {
	ES    *elasticsearch.Client
	Index string
}

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	if url == "" {
		return nil, nil
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return client, nil
}

func NewIndex(es *elasticsearch.Client) *Index {
	return &Index{ES: es, Index: DishIndex}
}

func docFromDish(d *models.Dish) DishDoc {
	return DishDoc{
		ID:            d.ID,
		Slug:          d.Slug,
		NameEn:        d.NameEn,
		NameNl:        d.NameNl,
		NameFr:        d.NameFr,
		DescriptionEn: d.DescriptionEn,
		DescriptionNl: d.DescriptionNl,
		DescriptionFr: d.DescriptionFr,
		Price:         d.Price,
		IsActive:      d.IsActive,
	}
}

func (i *Index) IndexDish(ctx context.Context, dish *models.Dish) error {
	if i == nil || i.ES == nil {
		return nil
	}

	doc := docFromDish(dish)
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("search: marshal dish: %w", err)
	}

	res, err := i.ES.Index(
		i.Index,
		bytes.NewReader(data),
		i.ES.Index.WithContext(ctx),
		i.ES.Index.WithDocumentID(dish.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("search: index dish: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("search: index dish: %s: %s", res.Status(), body)
	}
	return nil
}

func (i *Index) DeleteDish(ctx context.Context, id uuid.UUID) error {
	if i == nil || i.ES == nil {
		return nil
	}
	res, err := i.ES.Delete(i.Index, id.String(), i.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search: delete dish: %w", err)
	}
	defer res.Body.Close()
	return nil
}

// Search runs a fuzzy multi_match over every localized name and description.
func (i *Index) Search(ctx context.Context, query string, from, size int) (int64, []DishDoc, error) {
	if i == nil || i.ES == nil {
		return 0, nil, fmt.Errorf("search is not configured")
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query": query,
						"fields": []string{
							"name_en^2", "name_nl^2", "name_fr^2",
							"description_en", "description_nl", "description_fr",
						},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"is_active": true},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := i.ES.Search(
		i.ES.Search.WithContext(ctx),
		i.ES.Search.WithIndex(i.Index),
		i.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: query: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source DishDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode response: %w", err)
	}

	docs := make([]DishDoc, len(r.Hits.Hits))
	for n, hit := range r.Hits.Hits {
		docs[n] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}

// Reindex pushes the whole dish table into the index, one document at a time.
// Menu size is a few dozen dishes, bulk indexing would be overkill.
func (i *Index) Reindex(ctx context.Context, dishes []models.Dish) error {
	if i == nil || i.ES == nil {
		return nil
	}
	for n := range dishes {
		if err := i.IndexDish(ctx, &dishes[n]); err != nil {
			return err
		}
	}
	return nil
}
