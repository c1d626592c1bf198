package main

import (
	"context"
	"flag"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/ledongthuc/pdf"

	"ai-bookchat-be/internal/config"
	"ai-bookchat-be/internal/entity"
	"ai-bookchat-be/internal/repository/unitofwork"
	"ai-bookchat-be/pkg/database"
	"ai-bookchat-be/pkg/embedding"
	"ai-bookchat-be/pkg/utils"
)

var (
	chapterPattern = regexp.MustCompile(`(?i)^chapter\s+\d+`)
	sectionPattern = regexp.MustCompile(`^[A-Z][A-Za-z ,'-]{2,60}$`)
)

const (
	chunkSize    = 1000
	chunkOverlap = 150
	embedDelay   = 200 * time.Millisecond
)

// pageText is one extracted page with the headings in force when it starts.
type pageText struct {
	number  int
	text    string
	chapter string
	section string
}

func main() {
	filePath := flag.String("file", "", "path to the book PDF")
	replace := flag.Bool("replace", false, "delete the existing corpus before ingesting")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("Usage: ingest -file <book.pdf> [-replace]")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}
	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	} else {
		provider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey, cfg.Ai.EmbeddingModel)
	}

	pages, err := extractPages(*filePath)
	if err != nil {
		log.Fatal("Error: Failed to extract PDF text:", err)
	}
	log.Printf("Extracted %d pages from %s", len(pages), *filePath)

	ctx := context.Background()
	chunks := buildChunks(ctx, provider, pages, cfg.Rag.EmbeddingDimension)
	if len(chunks) == 0 {
		log.Fatal("Error: No chunks produced, nothing to ingest")
	}

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Fatal("Error: Failed to begin transaction:", err)
	}
	defer uow.Rollback()

	if *replace {
		if err := uow.BookChunkRepository().DeleteAll(ctx); err != nil {
			log.Fatal("Error: Failed to clear existing corpus:", err)
		}
		log.Println("Existing corpus cleared")
	}

	if err := uow.BookChunkRepository().CreateBatch(ctx, chunks); err != nil {
		log.Fatal("Error: Failed to store chunks:", err)
	}
	if err := uow.Commit(); err != nil {
		log.Fatal("Error: Failed to commit:", err)
	}

	log.Printf("Ingested %d chunks. Reload the corpus via POST /api/admin/corpus/reload or restart the server.", len(chunks))
}

func extractPages(path string) ([]pageText, error) {
	f, rdr, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []pageText
	chapter, section := "", ""

	for i := 1; i <= rdr.NumPage(); i++ {
		p := rdr.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			log.Printf("Warn: page %d unreadable, skipping: %v", i, err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		pageChapter, pageSection := chapter, section
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if chapterPattern.MatchString(line) {
				chapter = line
				section = ""
			} else if len(line) < 60 && sectionPattern.MatchString(line) && !strings.HasSuffix(line, ".") {
				section = line
			}
		}

		pages = append(pages, pageText{
			number:  i,
			text:    text,
			chapter: pageChapter,
			section: pageSection,
		})
	}
	return pages, nil
}

func buildChunks(ctx context.Context, provider embedding.EmbeddingProvider, pages []pageText, dimension int) []*entity.BookChunk {
	var chunks []*entity.BookChunk
	index := 0

	for _, page := range pages {
		for _, piece := range utils.SplitText(page.text, chunkSize, chunkOverlap) {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}

			res, err := provider.Generate(ctx, piece, embedding.TaskRetrievalDocument)
			if err != nil {
				log.Printf("Warn: embedding failed for chunk %d, skipping: %v", index, err)
				continue
			}
			if len(res.Embedding.Values) != dimension {
				log.Fatalf("Error: embedding dimension mismatch: got %d, want %d (check EMBEDDING_DIMENSION)",
					len(res.Embedding.Values), dimension)
			}

			chunks = append(chunks, &entity.BookChunk{
				Id:           uuid.New(),
				Content:      piece,
				Embedding:    res.Embedding.Values,
				ChapterTitle: page.chapter,
				SectionTitle: page.section,
				PageNumber:   page.number,
				ChunkIndex:   index,
				CreatedAt:    time.Now(),
			})
			index++

			if index%25 == 0 {
				log.Printf("Embedded %d chunks...", index)
			}
			// Stay under provider rate limits.
			time.Sleep(embedDelay)
		}
	}

	return chunks
}
