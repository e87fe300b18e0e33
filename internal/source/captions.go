package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"vidquiz-service/internal/domain"
)

// TranscriptCache persists fetched transcripts so repeat requests skip the
// captions service. Same contract as the quiz cache store.
type TranscriptCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
}

// CaptionsStrategy fetches an existing transcript from a third-party
// captions endpoint. Videos without captions yield ErrNoSourceMaterial so
// the caller can offer the slower transcription path.
type CaptionsStrategy struct {
	baseURL string
	client  *http.Client
	cache   TranscriptCache
}

func NewCaptionsStrategy(baseURL string, cache TranscriptCache) *CaptionsStrategy {
	return &CaptionsStrategy{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		cache:   cache,
	}
}

func (s *CaptionsStrategy) FetchSourceMaterial(ctx context.Context, videoID string) (domain.SourceMaterial, error) {
	if data, ok, err := s.cache.Get(ctx, transcriptKey(videoID)); err == nil && ok {
		log.Printf("transcript cache hit for video %s", videoID)
		return domain.SourceMaterial{Transcript: string(data)}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+videoID, nil)
	if err != nil {
		return domain.SourceMaterial{}, fmt.Errorf("build captions request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return domain.SourceMaterial{}, fmt.Errorf("%w: captions fetch: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.SourceMaterial{}, domain.ErrNoSourceMaterial
	}
	if resp.StatusCode != http.StatusOK {
		return domain.SourceMaterial{}, fmt.Errorf("%w: captions service returned %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.SourceMaterial{}, fmt.Errorf("%w: read captions body: %v", domain.ErrUpstreamFailure, err)
	}
	transcript := strings.TrimSpace(string(body))
	if transcript == "" {
		return domain.SourceMaterial{}, domain.ErrNoSourceMaterial
	}

	if err := s.cache.Put(ctx, transcriptKey(videoID), []byte(transcript)); err != nil {
		log.Printf("transcript cache write for video %s failed: %v", videoID, err)
	}
	return domain.SourceMaterial{Transcript: transcript}, nil
}

func transcriptKey(videoID string) string {
	return "transcripts/" + videoID
}
