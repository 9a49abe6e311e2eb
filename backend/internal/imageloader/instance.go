package imageloader

import (
	"errors"
	"github.com/disintegration/imaging"
	"image"
	"sync"
	"time"
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/common/logger"
)

// Instance holds the decoded image of one item and its latest scaled
// version.
type Instance struct {
	item        *apitype.Item
	full        image.Image
	scaled      image.Image
	imageLoader api.ImageLoader
	mux         sync.Mutex
}

func NewInstance(item *apitype.Item, imageLoader api.ImageLoader) *Instance {
	return &Instance{
		item:        item,
		imageLoader: imageLoader,
	}
}

func (s *Instance) IsValid() bool {
	return s.item.IsValid()
}

func (s *Instance) GetFull() (image.Image, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.getFull()
}

func (s *Instance) getFull() (image.Image, error) {
	if s.full != nil {
		logger.Trace.Print("Use cached full image")
		return s.full, nil
	}
	if s.imageLoader == nil {
		return nil, errors.New("no valid loader")
	}

	startTime := time.Now()
	full, err := s.imageLoader.LoadImage(s.item, 0, 0)
	if err != nil {
		return nil, err
	}
	s.full = full
	logger.Trace.Printf("%s: Full loaded in %s", s.item.Id(), time.Since(startTime))
	return s.full, nil
}

// GetScaled fits the full image inside width x height. The previous
// result is reused when the requested box yields the same size.
func (s *Instance) GetScaled(width int, height int) (image.Image, error) {
	if !s.IsValid() {
		return nil, errors.New("invalid image instance")
	}
	s.mux.Lock()
	defer s.mux.Unlock()

	full, err := s.getFull()
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return full, nil
	}

	newWidth, newHeight := fitSize(full.Bounds(), width, height)
	if newWidth == full.Bounds().Dx() && newHeight == full.Bounds().Dy() {
		return full, nil
	}
	if s.scaled != nil && s.scaled.Bounds().Dx() == newWidth && s.scaled.Bounds().Dy() == newHeight {
		logger.Trace.Print("Use cached scaled image")
		return s.scaled, nil
	}

	startTime := time.Now()
	s.scaled = imaging.Resize(full, newWidth, newHeight, imaging.Lanczos)
	logger.Trace.Printf("%s: Scaled in %s", s.item.Id(), time.Since(startTime))
	return s.scaled, nil
}

func fitSize(bounds image.Rectangle, maxWidth int, maxHeight int) (int, int) {
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}
	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		width = int(float64(maxHeight)*ratio + 0.5)
		height = maxHeight
	} else {
		width = maxWidth
		height = int(float64(maxWidth)/ratio + 0.5)
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func (s *Instance) Purge() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.full = nil
	s.scaled = nil
}

func (s *Instance) GetByteLength() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return GetByteLength(s.full) + GetByteLength(s.scaled)
}

func GetByteLength(img image.Image) int {
	if img != nil {
		// Approximation using the image size
		const bytesPerPixel = 4
		bounds := img.Bounds()
		return bounds.Dx() * bounds.Dy() * bytesPerPixel
	}
	return 0
}
