package library

import (
	"errors"
	"fmt"
	"github.com/disintegration/imaging"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/backend/internal/database"
	"vincit.fi/photo-triage/common"
	"vincit.fi/photo-triage/common/logger"
	"vincit.fi/photo-triage/common/util"
)

const (
	videosCollectionId     = apitype.CollectionId("smart:videos")
	livePhotosCollectionId = apitype.CollectionId("smart:live-photos")
	directoryCollectionTag = "dir:"
)

// FileSystemLibrary serves the media below a root directory. Items are
// read from the catalog kept up to date by Scan.
type FileSystemLibrary struct {
	rootDir          string
	trashDir         string
	permanentDelete  bool
	includeVideos    bool
	itemStore        *database.ItemStore
	statusStore      *database.StatusStore
	progressReporter api.ProgressReporter
	mutex            sync.Mutex

	api.LibraryProvider
}

func NewFileSystemLibrary(params *common.Params, itemStore *database.ItemStore, statusStore *database.StatusStore, progressReporter api.ProgressReporter) *FileSystemLibrary {
	return &FileSystemLibrary{
		rootDir:          filepath.Clean(params.RootPath),
		trashDir:         filepath.Clean(params.ResolvedTrashDir()),
		permanentDelete:  params.PermanentDelete,
		includeVideos:    params.IncludeVideos,
		itemStore:        itemStore,
		statusStore:      statusStore,
		progressReporter: progressReporter,
	}
}

// LastScanned returns the time of the latest completed scan, or the zero
// time when the library has never been scanned.
func (s *FileSystemLibrary) LastScanned() (time.Time, error) {
	return s.statusStore.GetTimestamp(database.LibraryScanned)
}

func (s *FileSystemLibrary) RequestAuthorization() apitype.AuthorizationStatus {
	info, err := os.Stat(s.rootDir)
	if err != nil {
		logger.Warn.Printf("Library root '%s' is not accessible: %s", s.rootDir, err)
		return apitype.DENIED
	}
	if !info.IsDir() {
		logger.Warn.Printf("Library root '%s' is not a directory", s.rootDir)
		return apitype.DENIED
	}
	dir, err := os.Open(s.rootDir)
	if err != nil {
		logger.Warn.Printf("Library root '%s' is not readable: %s", s.rootDir, err)
		return apitype.DENIED
	}
	defer dir.Close()
	if _, err := dir.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn.Printf("Library root '%s' is not readable: %s", s.rootDir, err)
		return apitype.DENIED
	}
	return apitype.AUTHORIZED
}

// FetchCollections lists the smart collections first and then one user
// collection per directory that holds media.
func (s *FileSystemLibrary) FetchCollections() ([]*apitype.CollectionInfo, error) {
	videoCount, err := s.itemStore.CountItemsOfKind(apitype.VIDEO)
	if err != nil {
		return nil, err
	}
	livePhotoCount, err := s.itemStore.CountItemsOfKind(apitype.LIVE_PHOTO)
	if err != nil {
		return nil, err
	}
	directories, err := s.itemStore.GetDirectories()
	if err != nil {
		return nil, err
	}

	collections := []*apitype.CollectionInfo{
		{Collection: apitype.NewCollection(videosCollectionId, "Videos", apitype.SMART), Count: videoCount},
		{Collection: apitype.NewCollection(livePhotosCollectionId, "Live Photos", apitype.SMART), Count: livePhotoCount},
	}
	for _, directory := range directories {
		collections = append(collections, &apitype.CollectionInfo{
			Collection: apitype.NewCollection(directoryCollectionId(directory.Directory), s.directoryName(directory.Directory), apitype.USER),
			Count:      directory.Count,
		})
	}
	return collections, nil
}

func directoryCollectionId(relativeDir string) apitype.CollectionId {
	return apitype.CollectionId(directoryCollectionTag + filepath.ToSlash(relativeDir))
}

func (s *FileSystemLibrary) directoryName(relativeDir string) string {
	if relativeDir == "" {
		return filepath.Base(s.rootDir)
	}
	return filepath.ToSlash(relativeDir)
}

func (s *FileSystemLibrary) FetchItems(collection *apitype.Collection) ([]*apitype.Item, error) {
	if collection == nil {
		return s.itemStore.GetItems()
	}
	switch id := collection.Id(); {
	case id == videosCollectionId:
		return s.itemStore.GetItemsOfKind(apitype.VIDEO)
	case id == livePhotosCollectionId:
		return s.itemStore.GetItemsOfKind(apitype.LIVE_PHOTO)
	case strings.HasPrefix(string(id), directoryCollectionTag):
		relativeDir := filepath.FromSlash(strings.TrimPrefix(string(id), directoryCollectionTag))
		return s.itemStore.GetItemsInDirectory(relativeDir)
	default:
		return nil, fmt.Errorf("unknown collection '%s'", id)
	}
}

func (s *FileSystemLibrary) FetchItemsByIds(ids []apitype.ItemId) ([]*apitype.Item, error) {
	return s.itemStore.GetItemsByIds(ids)
}

// DeleteItems moves the items and their live photo companions to the
// trash directory, or removes them when permanent delete is enabled.
// Files that are already gone count as deleted.
func (s *FileSystemLibrary) DeleteItems(items []*apitype.Item) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var errs []error
	var deleted []apitype.ItemId
	for i, item := range items {
		s.progressReporter.Update("delete", i, len(items), false, false)
		if err := s.deleteItem(item); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", item.FileName(), err))
		} else {
			deleted = append(deleted, item.Id())
		}
	}
	s.progressReporter.Update("delete", len(items), len(items), false, false)

	if err := s.itemStore.RemoveItems(deleted); err != nil {
		errs = append(errs, err)
	}
	logger.Info.Printf("Deleted %d/%d items", len(deleted), len(items))
	return errors.Join(errs...)
}

func (s *FileSystemLibrary) deleteItem(item *apitype.Item) error {
	paths := []string{item.Path()}
	if item.Kind() == apitype.LIVE_PHOTO {
		for _, ending := range livePhotoCompanions {
			companion := filepath.Join(item.Directory(), baseName(item.FileName())+ending)
			if util.DoesFileExist(companion) {
				paths = append(paths, companion)
			}
		}
	}

	var errs []error
	for _, path := range paths {
		if err := s.deleteFile(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *FileSystemLibrary) deleteFile(path string) error {
	if s.permanentDelete {
		return util.RemoveFile(path)
	}
	relativePath, err := filepath.Rel(s.rootDir, path)
	if err != nil {
		return err
	}
	return util.MoveFile(path, filepath.Join(s.trashDir, relativePath))
}

// LoadImage decodes the item honoring the EXIF orientation and fits it
// inside width x height.
func (s *FileSystemLibrary) LoadImage(item *apitype.Item, width int, height int) (image.Image, error) {
	if item == nil {
		return nil, errors.New("no item")
	}
	switch item.Kind() {
	case apitype.VIDEO, apitype.UNSUPPORTED:
		return nil, fmt.Errorf("cannot show %s item '%s'", item.Kind(), item.FileName())
	}

	img, err := imaging.Open(item.Path(), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return img, nil
	}
	return imaging.Fit(img, width, height, imaging.Lanczos), nil
}
