package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/singleflight"

	"vidquiz-service/internal/domain"
)

// CacheStore abstracts how generated artifacts are persisted (flat files,
// Redis, in-memory). A miss is (nil, false, nil), never an error.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
}

// SourceStrategy resolves a video identifier to the material the generative
// backend will be prompted with.
type SourceStrategy interface {
	FetchSourceMaterial(ctx context.Context, videoID string) (domain.SourceMaterial, error)
}

// Generator is the generative backend boundary: material in, validated quiz out.
type Generator interface {
	GenerateQuiz(ctx context.Context, material domain.SourceMaterial) (domain.QuizDocument, error)
}

// QuizService orchestrates quiz generation: cache lookup, source strategy,
// backend call, and best-effort cache write.
type QuizService struct {
	cache           CacheStore
	strategies      map[string]SourceStrategy
	defaultStrategy string
	generator       Generator
	sf              singleflight.Group
}

func NewQuizService(cache CacheStore, strategies map[string]SourceStrategy, defaultStrategy string, generator Generator) *QuizService {
	return &QuizService{
		cache:           cache,
		strategies:      strategies,
		defaultStrategy: defaultStrategy,
		generator:       generator,
	}
}

// GenerateQuiz returns the cached quiz for videoID or generates one. Cached
// documents were validated at write time and are returned without
// re-validation. Concurrent misses for the same videoID are collapsed into a
// single backend call.
func (s *QuizService) GenerateQuiz(ctx context.Context, videoID, strategyName string) (domain.QuizDocument, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, domain.ErrInvalidInput
	}

	if doc, ok := s.cachedQuiz(ctx, videoID); ok {
		log.Printf("cache hit for video %s", videoID)
		return doc, nil
	}

	strategy, err := s.resolveStrategy(strategyName)
	if err != nil {
		return nil, err
	}

	result, err, _ := s.sf.Do(videoID, func() (interface{}, error) {
		// Re-check in case another request filled the cache meanwhile.
		if doc, ok := s.cachedQuiz(ctx, videoID); ok {
			return doc, nil
		}
		return s.generate(ctx, videoID, strategy)
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.QuizDocument), nil
}

func (s *QuizService) generate(ctx context.Context, videoID string, strategy SourceStrategy) (domain.QuizDocument, error) {
	material, err := strategy.FetchSourceMaterial(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if material.Empty() {
		return nil, domain.ErrNoSourceMaterial
	}

	doc, err := s.generator.GenerateQuiz(ctx, material)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal quiz: %w", err)
	}
	// Cache write is best-effort: a future request regenerating is an
	// acceptable fallback, a failed request is not.
	if err := s.cache.Put(ctx, quizKey(videoID), data); err != nil {
		log.Printf("cache write for video %s failed: %v", videoID, err)
	}
	return doc, nil
}

// cachedQuiz treats any cache error, including a corrupt entry, as a miss.
func (s *QuizService) cachedQuiz(ctx context.Context, videoID string) (domain.QuizDocument, bool) {
	data, ok, err := s.cache.Get(ctx, quizKey(videoID))
	if err != nil {
		log.Printf("cache read for video %s failed: %v", videoID, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var doc domain.QuizDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("cache entry for video %s is corrupt: %v", videoID, err)
		return nil, false
	}
	return doc, true
}

func (s *QuizService) resolveStrategy(name string) (SourceStrategy, error) {
	if name == "" {
		name = s.defaultStrategy
	}
	strategy, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidInput, name)
	}
	return strategy, nil
}

func quizKey(videoID string) string {
	return videoID
}
