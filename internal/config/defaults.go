package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:        "~/.config/calplan",
			SQLiteFile:  "calplan.db",
			JournalMode: "wal",
		},
		Calendar: CalendarConfig{
			WeekStart:       "sunday",
			DefaultCategory: "work",
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}
