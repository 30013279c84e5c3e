package config

const (
	defaultDirName    = ".tada"
	defaultSQLiteName = "tada.db"
	defaultLogName    = "tada.log"
)

// defaults returns the built-in values. storage.sqlite_path is left empty and
// resolved against storage.dir after loading.
func defaults(home string) map[string]any {
	return map[string]any{
		"storage.backend":     BackendFile,
		"storage.dir":         joinHome(home, defaultDirName),
		"storage.sqlite_path": "",

		"log.level":  "warn",
		"log.format": "text",
		"log.file":   "",

		"ui.theme": "classic",
	}
}
