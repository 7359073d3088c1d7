package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"videohub/internal/cache"
	"videohub/internal/models"
	"videohub/internal/repositories"
)

// Routing keys for video events.
const (
	EventVideoAdded   = "video.added"
	EventVideoDeleted = "video.deleted"
	EventVideoPurged  = "video.purged"
)

// EventPublisher sends a message under a routing key.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// VideoEvent is the body published after each admin mutation.
type VideoEvent struct {
	Type    string    `json:"type"`
	VideoID uint      `json:"video_id,omitempty"`
	Title   string    `json:"title,omitempty"`
	Count   int64     `json:"count,omitempty"`
	At      time.Time `json:"at"`
}

// VideoService handles business logic related to videos.
type VideoService struct {
	repo              repositories.VideoRepository
	cache             *cache.VideoCache
	events            EventPublisher
	invalidateOnWrite bool
}

// VideoOption configures a VideoService.
type VideoOption func(*VideoService)

// WithEvents publishes a VideoEvent after every mutation.
func WithEvents(p EventPublisher) VideoOption {
	return func(s *VideoService) { s.events = p }
}

// WithInvalidateOnWrite drops the cached listing after every mutation.
// Without it the public listing may lag the table by up to the cache TTL.
func WithInvalidateOnWrite(on bool) VideoOption {
	return func(s *VideoService) { s.invalidateOnWrite = on }
}

// NewVideoService creates a new VideoService reading the listing through vc.
func NewVideoService(repo repositories.VideoRepository, vc *cache.VideoCache, opts ...VideoOption) *VideoService {
	s := &VideoService{
		repo:  repo,
		cache: vc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListVideos returns the listing, possibly from cache.
func (s *VideoService) ListVideos(ctx context.Context) ([]models.Video, error) {
	return s.cache.GetVideos(ctx)
}

// AddVideo stores the video exactly as submitted.
func (s *VideoService) AddVideo(ctx context.Context, video *models.Video) error {
	if err := s.repo.Create(ctx, video); err != nil {
		return err
	}
	s.afterWrite(ctx, VideoEvent{Type: EventVideoAdded, VideoID: video.ID, Title: video.Title})
	return nil
}

// DeleteByTitle removes every video with exactly this title.
func (s *VideoService) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	n, err := s.repo.DeleteByTitle(ctx, title)
	if err != nil {
		return 0, err
	}
	s.afterWrite(ctx, VideoEvent{Type: EventVideoDeleted, Title: title, Count: n})
	return n, nil
}

// DeleteAll removes every video and restarts ids at 1. There is no undo.
func (s *VideoService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}
	s.afterWrite(ctx, VideoEvent{Type: EventVideoPurged})
	return nil
}

// afterWrite never fails the request: the row change is already committed.
func (s *VideoService) afterWrite(ctx context.Context, ev VideoEvent) {
	if s.invalidateOnWrite {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	if s.events == nil {
		return
	}
	ev.At = time.Now().UTC()
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", ev.Type, err)
		return
	}
	if err := s.events.Publish(ev.Type, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", ev.Type, err)
	}
}

// String renders the event for audit logs.
func (e VideoEvent) String() string {
	switch e.Type {
	case EventVideoAdded:
		return fmt.Sprintf("%s id=%d title=%q", e.Type, e.VideoID, e.Title)
	case EventVideoDeleted:
		return fmt.Sprintf("%s title=%q rows=%d", e.Type, e.Title, e.Count)
	default:
		return e.Type
	}
}
