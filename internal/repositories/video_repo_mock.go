package repositories

import (
	"context"
	"sync"

	"videohub/internal/models"
)

// MockVideoRepository is an in-memory implementation of VideoRepository.
type MockVideoRepository struct {
	videos []models.Video
	nextID uint
	calls  int
	mu     sync.RWMutex
}

// NewMockVideoRepository creates a new instance of MockVideoRepository.
func NewMockVideoRepository() *MockVideoRepository {
	return &MockVideoRepository{nextID: 1}
}

// GetAll returns a copy of all videos in insertion order.
func (r *MockVideoRepository) GetAll(_ context.Context) ([]models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	out := make([]models.Video, len(r.videos))
	copy(out, r.videos)
	return out, nil
}

// Create appends a video and assigns the next ID.
func (r *MockVideoRepository) Create(_ context.Context, video *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	video.ID = r.nextID
	r.nextID++
	r.videos = append(r.videos, *video)
	return nil
}

// DeleteByTitle removes every video with the given title.
func (r *MockVideoRepository) DeleteByTitle(_ context.Context, title string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.videos[:0]
	var n int64
	for _, v := range r.videos {
		if v.Title == title {
			n++
			continue
		}
		kept = append(kept, v)
	}
	r.videos = kept
	return n, nil
}

// DeleteAll removes everything and restarts IDs at 1.
func (r *MockVideoRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.videos = nil
	r.nextID = 1
	return nil
}

// GetAllCalls reports how many times GetAll has run.
func (r *MockVideoRepository) GetAllCalls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.calls
}
