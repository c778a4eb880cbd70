package ingest

// Recorder receives typed pipeline events. The loaders emit events instead of
// logging directly; callers decide whether to render them as logs, metrics, or
// both.
type Recorder interface {
	// FileSkipped is emitted when a reference file's fingerprint is unchanged
	// and the load is skipped entirely.
	FileSkipped(fileName string)
	// FileLoaded is emitted after a reference table has been replaced and the
	// new fingerprint recorded.
	FileLoaded(fileName, table string, rows int)
	// FileFailed is emitted when one reference file fails; the remaining
	// files still load.
	FileFailed(fileName string, err error)

	// HourLoaded is emitted for each hourly partition file that contributed
	// rows to the current window.
	HourLoaded(fileName string, rows int)
	// HourFailed is emitted when one hour's fetch, validation or parse fails;
	// the remaining hours still load.
	HourFailed(fileName string, err error)

	// TransactionsPurged is emitted when rows from a prior run for the target
	// date were deleted before reloading.
	TransactionsPurged(processDate string, rows int64)
	// TransactionsLoaded is emitted after the concatenated window has been
	// appended to the fact table.
	TransactionsLoaded(processDate string, rows int)
	// WindowEmpty is emitted when no hourly file contributed rows and the
	// fact table is left untouched for the date.
	WindowEmpty(processDate string)
}
