package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// QuestionBankService retrieves interview question material relevant to a
// role from a qdrant collection. The material seeds the persona prompt;
// retrieval is best-effort and the interview works without it.
type QuestionBankService interface {
	InitCollection() error
	UpsertQuestion(ctx context.Context, docID string, topic string, text string, embedding []float32) error
	SearchRelevant(ctx context.Context, queryEmbedding []float32, limit int) ([]QuestionResult, error)
}

type QuestionResult struct {
	ID    string
	Score float32
	Text  string
	Topic string
}

type questionBankService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQuestionBankService(urlStr, apiKey, collectionName string) (QuestionBankService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &questionBankService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements QuestionBankService.
func (q *questionBankService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Question bank collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertQuestion implements QuestionBankService.
func (q *questionBankService) UpsertQuestion(ctx context.Context, docID string, topic string, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id": docID,
			"topic":  topic,
			"text":   text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchRelevant implements QuestionBankService.
func (q *questionBankService) SearchRelevant(ctx context.Context, queryEmbedding []float32, limit int) ([]QuestionResult, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []QuestionResult
	for _, point := range searchResult {
		payload := point.Payload

		result := QuestionResult{
			Score: point.Score,
		}

		if docID, ok := payload["doc_id"]; ok {
			if val, ok := docID.GetKind().(*qdrant.Value_StringValue); ok {
				result.ID = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}

		if topic, ok := payload["topic"]; ok {
			if val, ok := topic.GetKind().(*qdrant.Value_StringValue); ok {
				result.Topic = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// FormatQuestionContext joins retrieved question material for prompt use.
func FormatQuestionContext(results []QuestionResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for _, result := range results {
		parts = append(parts, strings.TrimSpace(result.Text))
	}

	return strings.Join(parts, "\n\n")
}
