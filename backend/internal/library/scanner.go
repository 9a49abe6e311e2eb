package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/backend/internal/database"
	"vincit.fi/photo-triage/common/logger"
)

const scanProgressName = "scan"

type scanEntry struct {
	id          apitype.ItemId
	relativeDir string
	fileName    string
	path        string
	kind        apitype.MediaKind
	info        os.FileInfo
}

type scanResult struct {
	item *database.Item
	err  error
}

// Scan walks the root directory and synchronizes the item catalog.
// Files whose size and modification time are unchanged are not read.
func (s *FileSystemLibrary) Scan() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	startTime := time.Now()
	logger.Info.Printf("Scanning library '%s'", s.rootDir)

	entries, err := s.collectEntries()
	if err != nil {
		s.progressReporter.Error("Could not scan library", err)
		return err
	}
	storedItems, err := s.itemStore.GetStoredItems()
	if err != nil {
		return err
	}

	total := len(entries)
	s.progressReporter.Update(scanProgressName, 0, total, false, false)

	seen := make(map[apitype.ItemId]bool, total)
	var changed []*scanEntry
	for _, entry := range entries {
		seen[entry.id] = true
		if stored, ok := storedItems[entry.id]; ok && isUnchanged(&stored, entry) {
			continue
		}
		changed = append(changed, entry)
	}

	processed := total - len(changed)
	s.progressReporter.Update(scanProgressName, processed, total, false, false)

	for result := range s.readMetaData(changed) {
		processed++
		if result.err != nil {
			logger.Warn.Print("Could not read item ", result.err)
		} else if err := s.itemStore.AddOrUpdateItem(result.item); err != nil {
			s.progressReporter.Error("Could not store item", err)
			return err
		}
		s.progressReporter.Update(scanProgressName, processed, total, false, false)
	}

	removed, err := s.itemStore.RemoveItemsNotIn(seen)
	if err != nil {
		return err
	}
	if err := s.statusStore.UpdateTimestamp(database.LibraryScanned, time.Now()); err != nil {
		logger.Warn.Print("Could not update scan status ", err)
	}

	logger.Info.Printf("Scanned %d items (%d read, %d removed) in %s",
		total, len(changed), removed, time.Since(startTime))
	return nil
}

func isUnchanged(stored *database.Item, entry *scanEntry) bool {
	return stored.ModifiedTimestamp == entry.info.ModTime().UnixNano() &&
		stored.ByteSize == entry.info.Size() &&
		stored.MediaKind == entry.kind.AsId()
}

// readMetaData resolves creation times on a fixed number of goroutines
// so that large libraries do not open every file at once.
func (s *FileSystemLibrary) readMetaData(entries []*scanEntry) <-chan *scanResult {
	threadCount := runtime.NumCPU()
	inputChannel := make(chan *scanEntry, len(entries))
	outputChannel := make(chan *scanResult)

	for _, entry := range entries {
		inputChannel <- entry
	}
	close(inputChannel)

	done := make(chan bool)
	for i := 0; i < threadCount; i++ {
		go func() {
			for entry := range inputChannel {
				outputChannel <- toScanResult(entry)
			}
			done <- true
		}()
	}
	go func() {
		for i := 0; i < threadCount; i++ {
			<-done
		}
		close(outputChannel)
	}()

	return outputChannel
}

func toScanResult(entry *scanEntry) *scanResult {
	created := CreatedTime(entry.path, entry.info)
	return &scanResult{
		item: &database.Item{
			Id:                string(entry.id),
			Directory:         entry.relativeDir,
			FileName:          entry.fileName,
			MediaKind:         entry.kind.AsId(),
			ByteSize:          entry.info.Size(),
			CreatedTimestamp:  created.Unix(),
			ModifiedTimestamp: entry.info.ModTime().UnixNano(),
		},
	}
}

func (s *FileSystemLibrary) collectEntries() ([]*scanEntry, error) {
	filesByDir := map[string][]fs.DirEntry{}
	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.rootDir && (strings.HasPrefix(d.Name(), ".") || path == s.trashDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		dir := filepath.Dir(path)
		filesByDir[dir] = append(filesByDir[dir], d)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(filesByDir))
	for dir := range filesByDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var entries []*scanEntry
	for _, dir := range dirs {
		dirEntries, err := s.entriesForDirectory(dir, filesByDir[dir])
		if err != nil {
			return nil, err
		}
		entries = append(entries, dirEntries...)
	}
	return entries, nil
}

// entriesForDirectory classifies the files of one directory. An image
// with a same-named .mov companion becomes a live photo and the
// companion is not listed on its own.
func (s *FileSystemLibrary) entriesForDirectory(dir string, files []fs.DirEntry) ([]*scanEntry, error) {
	relativeDir, err := filepath.Rel(s.rootDir, dir)
	if err != nil {
		return nil, err
	}
	if relativeDir == "." {
		relativeDir = ""
	}

	kinds := map[string]apitype.MediaKind{}
	videoBases := map[string]string{}
	imageBases := map[string]bool{}
	for _, file := range files {
		kind, ok := KindForExtension(filepath.Ext(file.Name()))
		if !ok {
			continue
		}
		kinds[file.Name()] = kind
		base := strings.ToLower(baseName(file.Name()))
		if kind == apitype.VIDEO && strings.EqualFold(filepath.Ext(file.Name()), ".mov") {
			videoBases[base] = file.Name()
		} else if kind == apitype.IMAGE {
			imageBases[base] = true
		}
	}

	var entries []*scanEntry
	for _, file := range files {
		kind, ok := kinds[file.Name()]
		if !ok {
			continue
		}
		base := strings.ToLower(baseName(file.Name()))
		if kind == apitype.IMAGE {
			if _, hasCompanion := videoBases[base]; hasCompanion {
				kind = apitype.LIVE_PHOTO
			}
		} else if kind == apitype.VIDEO {
			if videoBases[base] == file.Name() && imageBases[base] {
				continue
			}
			if !s.includeVideos {
				continue
			}
		}

		info, err := file.Info()
		if err != nil {
			logger.Warn.Printf("Could not stat '%s': %s", file.Name(), err)
			continue
		}
		relativePath := filepath.Join(relativeDir, file.Name())
		entries = append(entries, &scanEntry{
			id:          ItemIdForPath(relativePath),
			relativeDir: relativeDir,
			fileName:    file.Name(),
			path:        filepath.Join(dir, file.Name()),
			kind:        kind,
			info:        info,
		})
	}
	return entries, nil
}
