package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"

	"bodrum_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ElasticClient *elasticsearch.Client

// ConnectElastic initialise le client Elasticsearch. Optionnel : sans
// ELASTIC_URL la recherche retombe sur le filtrage en mémoire.
func ConnectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ Elasticsearch non configuré — recherche menu en mémoire")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️ Erreur création client Elasticsearch:", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable:", err)
		return
	}
	defer res.Body.Close()

	ElasticClient = client
	log.Println("✅ Connecté à Elasticsearch")
}

//
// --- INDEXATION DANS ELASTICSEARCH ---
//

// IndexMenuItem indexe un plat du menu dans Elasticsearch
func IndexMenuItem(item models.MenuItem) {
	if ElasticClient == nil {
		return
	}

	data, _ := json.Marshal(item)
	req := esapi.IndexRequest{
		Index:      "menu",
		DocumentID: item.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true", // rend la donnée immédiatement visible
	}

	res, err := req.Do(context.Background(), ElasticClient)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", item.Name, res.String())
	} else {
		log.Printf("✅ Plat indexé dans Elasticsearch: %s", item.Name)
	}
}

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//

// SearchMenu recherche des plats par nom ou description
func SearchMenu(query string) ([]models.MenuItem, error) {
	if ElasticClient == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, err
	}

	res, err := ElasticClient.Search(
		ElasticClient.Search.WithContext(context.Background()),
		ElasticClient.Search.WithIndex("menu"),
		ElasticClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("erreur de recherche Elasticsearch: " + res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.MenuItem `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	items := make([]models.MenuItem, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		items = append(items, hit.Source)
	}
	return items, nil
}
