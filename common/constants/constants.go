package constants

const (
	AppName         = "photo-triage"
	TriageDir       = ".photo-triage"
	TrashDir        = "trash"
	DatabaseFile    = "photo-triage.db"
	ConfigFile      = "config.toml"
	LogFile         = "photo-triage.log"
	EventQueueSize  = 100
	DefaultLogLevel = "INFO"
)
