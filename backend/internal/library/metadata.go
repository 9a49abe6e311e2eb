package library

import (
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	"os"
	"path/filepath"
	"strings"
	"time"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/common/logger"
)

var (
	itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("vincit.fi/photo-triage/item"))

	imageFileEndings       = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}
	exifFileEndings        = map[string]bool{".jpg": true, ".jpeg": true}
	videoFileEndings       = map[string]bool{".mov": true, ".mp4": true, ".m4v": true}
	unsupportedFileEndings = map[string]bool{".heic": true, ".heif": true, ".dng": true, ".raw": true}
	livePhotoCompanions    = []string{".mov", ".MOV"}
)

// ItemIdForPath derives a stable identifier from the path relative to
// the library root.
func ItemIdForPath(relativePath string) apitype.ItemId {
	return apitype.ItemId(uuid.NewSHA1(itemNamespace, []byte(filepath.ToSlash(relativePath))).String())
}

// KindForExtension returns false for files that are not media at all.
func KindForExtension(extension string) (apitype.MediaKind, bool) {
	extension = strings.ToLower(extension)
	switch {
	case imageFileEndings[extension]:
		return apitype.IMAGE, true
	case videoFileEndings[extension]:
		return apitype.VIDEO, true
	case unsupportedFileEndings[extension]:
		return apitype.UNSUPPORTED, true
	}
	return apitype.UNSUPPORTED, false
}

func baseName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// CreatedTime prefers the EXIF capture time and falls back to the file
// modification time.
func CreatedTime(path string, info os.FileInfo) time.Time {
	if exifFileEndings[strings.ToLower(filepath.Ext(path))] {
		if created, err := loadExifCreatedTime(path); err == nil && !created.IsZero() {
			return created
		} else if err != nil {
			logger.Debug.Printf("No EXIF capture time for '%s': %s", path, err)
		}
	}
	return info.ModTime()
}

func loadExifCreatedTime(path string) (time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	decodedExif, err := exif.Decode(file)
	if err != nil {
		return time.Time{}, err
	}
	return decodedExif.DateTime()
}
