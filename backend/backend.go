package backend

import (
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/backend/internal/database"
	"vincit.fi/photo-triage/backend/internal/imageloader"
	"vincit.fi/photo-triage/backend/internal/library"
	"vincit.fi/photo-triage/backend/internal/triage"
	"vincit.fi/photo-triage/common"
	"vincit.fi/photo-triage/common/event"
	"vincit.fi/photo-triage/common/logger"
)

type Stores struct {
	ItemStore       *database.ItemStore
	IdentifierStore *database.IdentifierStore
	StatusStore     *database.StatusStore
	database        *database.Database
}

func (s *Stores) Close() {
	s.database.Close()
}

type Services struct {
	Library       *library.FileSystemLibrary
	ImageCache    *imageloader.ImageCache
	TriageService api.TriageService
}

// ScanLibrary synchronizes the item catalog with the files on disk.
func (s *Services) ScanLibrary() error {
	if err := s.Library.Scan(); err != nil {
		return err
	}
	s.ImageCache.Purge()
	return nil
}

type Brokers struct {
	Broker        *event.Broker
	DevNullBroker *event.Broker
}

func InitializeEventBrokers(eventBusQueueSize int) *Brokers {
	logger.Debug.Printf("Initialize event brokers...")
	brokers := &Brokers{
		Broker:        event.InitBus(eventBusQueueSize),
		DevNullBroker: event.InitDevNullBus(),
	}
	logger.Debug.Printf("Event brokers initialized")
	return brokers
}

// InitializeStores opens the library database under the root directory
// and runs the migrations.
func InitializeStores(params *common.Params) (*Stores, error) {
	logger.Debug.Printf("Initialize databases...")
	db := database.NewDatabase()
	if err := db.InitializeForDirectory(params.RootPath, params.DatabaseFile); err != nil {
		logger.Error.Print("Error opening database ", err)
		return nil, err
	}
	if _, err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug.Printf("Initialize backend stores...")
	stores := newStores(db)
	logger.Debug.Printf("Stores and databases initialized")
	return stores, nil
}

// InitializeInMemoryStores is used when nothing may be written next to
// the library.
func InitializeInMemoryStores(params *common.Params) (*Stores, error) {
	db, err := database.NewInMemoryDatabase(params.RootPath)
	if err != nil {
		return nil, err
	}
	return newStores(db), nil
}

func newStores(db *database.Database) *Stores {
	return &Stores{
		ItemStore:       database.NewItemStore(db),
		IdentifierStore: database.NewIdentifierStore(db),
		StatusStore:     database.NewStatusStore(db),
		database:        db,
	}
}

// InitializeServices wires the library and the triage service. Results
// of asynchronous deletions are delivered through dispatcher, which
// must run on the goroutine that drives the triage service.
func InitializeServices(params *common.Params, stores *Stores, sender api.Sender, dispatcher api.Dispatcher) *Services {
	logger.Debug.Printf("Initialize services...")
	progressReporter := api.NewSenderProgressReporter(sender)
	fileSystemLibrary := library.NewFileSystemLibrary(params, stores.ItemStore, stores.StatusStore, progressReporter)
	services := &Services{
		Library:       fileSystemLibrary,
		ImageCache:    imageloader.NewImageCache(fileSystemLibrary, imageloader.DefaultCapacity),
		TriageService: triage.NewTriageService(sender, fileSystemLibrary, stores.IdentifierStore, dispatcher),
	}
	logger.Debug.Printf("Services initialized")
	return services
}

// Start scans the library, restores the outcome sets and loads the
// first selection. A denied library is reported but not an error.
func (s *Services) Start() error {
	triageService := s.TriageService
	if status := triageService.RequestAuthorization(); !status.IsGranted() {
		logger.Warn.Printf("Library access %s", status)
		return nil
	}
	if err := s.ScanLibrary(); err != nil {
		return err
	}
	triageService.Initialize()
	triageService.LoadInitialData()
	return nil
}
