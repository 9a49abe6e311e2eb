package imageloader

import (
	"errors"
	"image"
	"sync"
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/common/logger"
)

const DefaultCapacity = 8

// ImageCache keeps the decoded images of the most recently shown items
// so that undo and revisits do not decode the file again.
type ImageCache struct {
	imageLoader api.ImageLoader
	capacity    int
	instances   map[apitype.ItemId]*Instance
	order       []apitype.ItemId
	mux         sync.Mutex

	api.ImageLoader
}

func NewImageCache(imageLoader api.ImageLoader, capacity int) *ImageCache {
	logger.Debug.Printf("Initialize image cache...")
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	imageCache := &ImageCache{
		imageLoader: imageLoader,
		capacity:    capacity,
		instances:   map[apitype.ItemId]*Instance{},
	}
	logger.Debug.Printf("Image cache initialized")
	return imageCache
}

func (s *ImageCache) LoadImage(item *apitype.Item, width int, height int) (image.Image, error) {
	if !item.IsValid() {
		return nil, errors.New("invalid item")
	}
	return s.getInstance(item).GetScaled(width, height)
}

func (s *ImageCache) getInstance(item *apitype.Item) *Instance {
	s.mux.Lock()
	defer s.mux.Unlock()

	id := item.Id()
	if instance, ok := s.instances[id]; ok {
		s.touch(id)
		return instance
	}

	instance := NewInstance(item, s.imageLoader)
	s.instances[id] = instance
	s.order = append(s.order, id)
	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.instances, oldest)
		logger.Trace.Printf("Evicted '%s' from image cache", oldest)
	}
	return instance
}

func (s *ImageCache) touch(id apitype.ItemId) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.order = append(s.order, id)
}

func (s *ImageCache) Contains(id apitype.ItemId) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	_, ok := s.instances[id]
	return ok
}

func (s *ImageCache) Purge() {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, instance := range s.instances {
		instance.Purge()
	}
	s.instances = map[apitype.ItemId]*Instance{}
	s.order = nil
}

func (s *ImageCache) GetByteSize() (byteSize uint64) {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, instance := range s.instances {
		byteSize += uint64(instance.GetByteLength())
	}
	return
}

func (s *ImageCache) GetSizeInMB() float64 {
	return float64(s.GetByteSize()) / (1024 * 1024)
}
