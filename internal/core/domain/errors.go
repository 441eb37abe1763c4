package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedLanguage is returned when a file or configuration names a language polish cannot handle.
	ErrUnsupportedLanguage = zerr.New("unsupported language")

	// ErrInvalidPlugin is returned when a plugin does not match the registration schema.
	ErrInvalidPlugin = zerr.New("invalid plugin")

	// ErrPluginLoadFailed is returned when a plugin manifest or script cannot be loaded.
	ErrPluginLoadFailed = zerr.New("failed to load plugin")

	// ErrRuleNotFound is returned when a rule id does not resolve to a registered rule.
	ErrRuleNotFound = zerr.New("rule not found")

	// ErrFormatterNotFound is returned when no formatter is available for a language.
	ErrFormatterNotFound = zerr.New("formatter not found")

	// ErrParseFailed is returned when the parsing front-end cannot produce a node tree.
	ErrParseFailed = zerr.New("failed to parse source")

	// ErrFormatFailed is returned when a formatter rejects its input.
	ErrFormatFailed = zerr.New("failed to format source")

	// ErrProcessorFailed is returned when a processor cannot split a file into fragments.
	ErrProcessorFailed = zerr.New("processor failed")

	// ErrRuleFailed is recorded when a rule handler raises during traversal.
	ErrRuleFailed = zerr.New("rule execution failed")

	// ErrCheckFailed is returned when a check finds at least one error-severity diagnostic.
	ErrCheckFailed = zerr.New("check failed")

	// ErrNoFilesMatched is returned when discovery yields no lintable files.
	ErrNoFilesMatched = zerr.New("no files matched")

	// ErrStoreCreateFailed is returned when the cache store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create cache store directory")

	// ErrStoreReadFailed is returned when a cache entry cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cache entry")

	// ErrStoreUnmarshalFailed is returned when a cache entry cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal cache entry")

	// ErrStoreMarshalFailed is returned when a cache entry cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal cache entry")

	// ErrStoreWriteFailed is returned when a cache entry cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cache entry")

	// ErrStorePurgeFailed is returned when the persistent cache cannot be emptied.
	ErrStorePurgeFailed = zerr.New("failed to purge cache store")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidRuleSetting is returned when a rule setting is neither a severity nor a [severity, options] pair.
	ErrInvalidRuleSetting = zerr.New("invalid rule setting")

	// ErrFileReadFailed is returned when a source file cannot be read.
	ErrFileReadFailed = zerr.New("failed to read source file")

	// ErrFileWriteFailed is returned when a formatted or fixed file cannot be written.
	ErrFileWriteFailed = zerr.New("failed to write source file")

	// ErrInvalidPattern is returned when a discovery glob is malformed.
	ErrInvalidPattern = zerr.New("invalid glob pattern")

	// ErrWatcherFailed is returned when the filesystem watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start watcher")

	// ErrExportFailed is returned when metrics or traces cannot be exported.
	ErrExportFailed = zerr.New("failed to export telemetry")

	// ErrUnknownReporter is returned when --reporter names no known output format.
	ErrUnknownReporter = zerr.New("unknown reporter")
)
