package source

import (
	"context"

	"vidquiz-service/internal/domain"
)

const defaultWatchURL = "https://www.youtube.com/watch?v="

// DirectStrategy skips source fetching entirely and passes the watch URL to
// the backend as a media reference, leaving the watching to the model.
type DirectStrategy struct {
	watchURL string
}

func NewDirectStrategy(watchURL string) *DirectStrategy {
	if watchURL == "" {
		watchURL = defaultWatchURL
	}
	return &DirectStrategy{watchURL: watchURL}
}

func (s *DirectStrategy) FetchSourceMaterial(_ context.Context, videoID string) (domain.SourceMaterial, error) {
	return domain.SourceMaterial{MediaURL: s.watchURL + videoID}, nil
}
