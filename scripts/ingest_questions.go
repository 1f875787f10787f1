package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/ai-interviewer/internal/config"
	"alfredoptarigan/ai-interviewer/internal/services"
)

// Ingests interview question material into the qdrant question bank:
// every PDF under ./question_bank is extracted, chunked, embedded, and
// upserted with its filename as the topic.
func main() {
	log.Println("🚀 Starting question bank ingestion...")

	// Load configuration
	cfg := config.Load()

	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL must be set for ingestion")
	}

	// Initialize services
	gateway, err := services.NewGeminiGateway(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	questionBank, err := services.NewQuestionBankService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := questionBank.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	chunker := services.NewTextChunker()

	ctx := context.Background()

	sourceDir := "./question_bank"
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", sourceDir, err)
	}

	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".pdf" {
			continue
		}

		path := filepath.Join(sourceDir, entry.Name())
		topic := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		log.Printf("\n📄 Processing: %s", entry.Name())

		// Extract text from PDF
		log.Printf("   📖 Extracting text...")
		text, err := services.ExtractPDFText(path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d characters", len(text))

		// Chunk the text
		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		// Embed and store each chunk
		log.Printf("   🔄 Embedding and storing chunks...")
		stored := 0
		for i, chunk := range chunks {
			embedding, err := gateway.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			docID := fmt.Sprintf("%s_chunk_%d", topic, i)

			if err := questionBank.UpsertQuestion(ctx, docID, topic, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++
		}

		log.Printf("   ✅ Stored %d/%d chunks", stored, len(chunks))
		successCount++
	}

	log.Printf("\n🏁 Ingestion finished: %d documents processed, %d failed\n", successCount, failCount)
}
