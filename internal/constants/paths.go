package constants

// Log file settings.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.svnop/logs/svnop.log
	CLILogFileName = "svnop.log"

	// LogMaxSizeMB is the size in megabytes at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is the number of days rotated log files are kept.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Configuration and data file names.
const (
	// GlobalConfigName is the name of the global configuration file
	// inside the svnop home directory.
	GlobalConfigName = "config.yaml"

	// JournalFileName is the SQLite database holding the operation journal.
	JournalFileName = "journal.db"
)
