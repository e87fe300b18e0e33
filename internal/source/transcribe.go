package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"vidquiz-service/internal/domain"
)

// Transcriber turns a downloaded audio file into transcript text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// MediaDownloader fetches the audio stream for a video into a local file.
// The cleanup func removes the file and must always be called.
type MediaDownloader interface {
	DownloadAudio(ctx context.Context, videoID string) (path string, cleanup func(), err error)
}

// TranscribeStrategy is the slow path: download the audio, run it through
// speech-to-text, and hand the transcript to the prompt. Used when a video
// has no captions.
type TranscribeStrategy struct {
	media MediaDownloader
	stt   Transcriber
	cache TranscriptCache
}

func NewTranscribeStrategy(media MediaDownloader, stt Transcriber, cache TranscriptCache) *TranscribeStrategy {
	return &TranscribeStrategy{media: media, stt: stt, cache: cache}
}

func (s *TranscribeStrategy) FetchSourceMaterial(ctx context.Context, videoID string) (domain.SourceMaterial, error) {
	if data, ok, err := s.cache.Get(ctx, transcriptKey(videoID)); err == nil && ok {
		log.Printf("transcript cache hit for video %s", videoID)
		return domain.SourceMaterial{Transcript: string(data)}, nil
	}

	audioPath, cleanup, err := s.media.DownloadAudio(ctx, videoID)
	if err != nil {
		return domain.SourceMaterial{}, err
	}
	defer cleanup()

	transcript, err := s.stt.Transcribe(ctx, audioPath)
	if err != nil {
		return domain.SourceMaterial{}, err
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return domain.SourceMaterial{}, domain.ErrNoSourceMaterial
	}

	if err := s.cache.Put(ctx, transcriptKey(videoID), []byte(transcript)); err != nil {
		log.Printf("transcript cache write for video %s failed: %v", videoID, err)
	}
	return domain.SourceMaterial{Transcript: transcript}, nil
}

// HTTPAudioDownloader pulls the audio stream from a configured media
// endpoint into a temp file.
type HTTPAudioDownloader struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAudioDownloader(baseURL string) *HTTPAudioDownloader {
	return &HTTPAudioDownloader{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

func (d *HTTPAudioDownloader) DownloadAudio(ctx context.Context, videoID string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/"+videoID, nil)
	if err != nil {
		return "", nil, fmt.Errorf("build media request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: media download: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil, domain.ErrNoSourceMaterial
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("%w: media endpoint returned %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "vidquiz-*.m4a")
	if err != nil {
		return "", nil, fmt.Errorf("create temp audio file: %w", err)
	}
	cleanup := func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			log.Printf("remove temp audio file %s: %v", tmp.Name(), err)
		}
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("%w: stream audio: %v", domain.ErrUpstreamFailure, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp audio file: %w", err)
	}
	return tmp.Name(), cleanup, nil
}
