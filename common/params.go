package common

import (
	"errors"
	"fmt"
	toml "github.com/pelletier/go-toml/v2"
	"io"
	"os"
	"path/filepath"
	"strings"
	"vincit.fi/photo-triage/common/constants"
)

type Params struct {
	RootPath          string
	LogLevel          string
	LogFile           string
	DatabaseFile      string
	TrashDir          string
	PermanentDelete   bool
	IncludeVideos     bool
	EventBusQueueSize int
}

type fileParams struct {
	LogLevel          *string `toml:"log_level"`
	LogFile           *string `toml:"log_file"`
	DatabaseFile      *string `toml:"database_file"`
	TrashDir          *string `toml:"trash_dir"`
	PermanentDelete   *bool   `toml:"permanent_delete"`
	IncludeVideos     *bool   `toml:"include_videos"`
	EventBusQueueSize *int    `toml:"event_bus_queue_size"`
}

func NewDefaultParams(rootPath string) *Params {
	return &Params{
		RootPath:          rootPath,
		LogLevel:          constants.DefaultLogLevel,
		LogFile:           constants.LogFile,
		DatabaseFile:      constants.DatabaseFile,
		TrashDir:          filepath.Join(constants.TriageDir, constants.TrashDir),
		PermanentDelete:   false,
		IncludeVideos:     true,
		EventBusQueueSize: constants.EventQueueSize,
	}
}

func ConfigPath(rootPath string) string {
	return filepath.Join(rootPath, constants.TriageDir, constants.ConfigFile)
}

// LoadParams reads the TOML config at path on top of the defaults.
// A missing file yields the defaults.
func LoadParams(rootPath string, path string) (*Params, error) {
	params := NewDefaultParams(rootPath)
	if strings.TrimSpace(path) == "" {
		path = ConfigPath(rootPath)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return params, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw fileParams
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	raw.applyTo(params)

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

func (s fileParams) applyTo(params *Params) {
	if s.LogLevel != nil && strings.TrimSpace(*s.LogLevel) != "" {
		params.LogLevel = strings.TrimSpace(*s.LogLevel)
	}
	if s.LogFile != nil && strings.TrimSpace(*s.LogFile) != "" {
		params.LogFile = strings.TrimSpace(*s.LogFile)
	}
	if s.DatabaseFile != nil && strings.TrimSpace(*s.DatabaseFile) != "" {
		params.DatabaseFile = strings.TrimSpace(*s.DatabaseFile)
	}
	if s.TrashDir != nil && strings.TrimSpace(*s.TrashDir) != "" {
		params.TrashDir = strings.TrimSpace(*s.TrashDir)
	}
	if s.PermanentDelete != nil {
		params.PermanentDelete = *s.PermanentDelete
	}
	if s.IncludeVideos != nil {
		params.IncludeVideos = *s.IncludeVideos
	}
	if s.EventBusQueueSize != nil {
		params.EventBusQueueSize = *s.EventBusQueueSize
	}
}

func (s *Params) Validate() error {
	if s.EventBusQueueSize <= 0 {
		return fmt.Errorf("event_bus_queue_size must be positive, got %d", s.EventBusQueueSize)
	}
	return nil
}

// ResolvedTrashDir returns the trash directory as an absolute path.
// Relative values are resolved against the root path.
func (s *Params) ResolvedTrashDir() string {
	if filepath.IsAbs(s.TrashDir) {
		return s.TrashDir
	}
	return filepath.Join(s.RootPath, s.TrashDir)
}

func (s *Params) ResolvedLogFile() string {
	if filepath.IsAbs(s.LogFile) {
		return s.LogFile
	}
	return filepath.Join(s.RootPath, constants.TriageDir, s.LogFile)
}
