package ingest

import "go.uber.org/zap"

// LogRecorder renders pipeline events as structured logs.
type LogRecorder struct {
	log *zap.Logger
}

func NewLogRecorder(log *zap.Logger) *LogRecorder {
	return &LogRecorder{log: log}
}

func (r *LogRecorder) FileSkipped(fileName string) {
	r.log.Info("skipped reference file, no change detected", zap.String("file", fileName))
}

func (r *LogRecorder) FileLoaded(fileName, table string, rows int) {
	r.log.Info("loaded reference file",
		zap.String("file", fileName),
		zap.String("table", table),
		zap.Int("rows", rows),
	)
}

func (r *LogRecorder) FileFailed(fileName string, err error) {
	r.log.Error("reference file failed", zap.String("file", fileName), zap.Error(err))
}

func (r *LogRecorder) HourLoaded(fileName string, rows int) {
	r.log.Info("processed hourly file", zap.String("file", fileName), zap.Int("rows", rows))
}

func (r *LogRecorder) HourFailed(fileName string, err error) {
	r.log.Error("hourly file failed", zap.String("file", fileName), zap.Error(err))
}

func (r *LogRecorder) TransactionsPurged(processDate string, rows int64) {
	r.log.Info("deleted existing transactions before reprocessing",
		zap.String("process_date", processDate),
		zap.Int64("rows", rows),
	)
}

func (r *LogRecorder) TransactionsLoaded(processDate string, rows int) {
	r.log.Info("loaded transactions",
		zap.String("process_date", processDate),
		zap.Int("rows", rows),
	)
}

func (r *LogRecorder) WindowEmpty(processDate string) {
	r.log.Warn("no transactions found", zap.String("process_date", processDate))
}

// MultiRecorder fans each event out to every wrapped recorder.
type MultiRecorder []Recorder

func (m MultiRecorder) FileSkipped(fileName string) {
	for _, r := range m {
		r.FileSkipped(fileName)
	}
}

func (m MultiRecorder) FileLoaded(fileName, table string, rows int) {
	for _, r := range m {
		r.FileLoaded(fileName, table, rows)
	}
}

func (m MultiRecorder) FileFailed(fileName string, err error) {
	for _, r := range m {
		r.FileFailed(fileName, err)
	}
}

func (m MultiRecorder) HourLoaded(fileName string, rows int) {
	for _, r := range m {
		r.HourLoaded(fileName, rows)
	}
}

func (m MultiRecorder) HourFailed(fileName string, err error) {
	for _, r := range m {
		r.HourFailed(fileName, err)
	}
}

func (m MultiRecorder) TransactionsPurged(processDate string, rows int64) {
	for _, r := range m {
		r.TransactionsPurged(processDate, rows)
	}
}

func (m MultiRecorder) TransactionsLoaded(processDate string, rows int) {
	for _, r := range m {
		r.TransactionsLoaded(processDate, rows)
	}
}

func (m MultiRecorder) WindowEmpty(processDate string) {
	for _, r := range m {
		r.WindowEmpty(processDate)
	}
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) FileSkipped(string)               {}
func (NopRecorder) FileLoaded(string, string, int)   {}
func (NopRecorder) FileFailed(string, error)         {}
func (NopRecorder) HourLoaded(string, int)           {}
func (NopRecorder) HourFailed(string, error)         {}
func (NopRecorder) TransactionsPurged(string, int64) {}
func (NopRecorder) TransactionsLoaded(string, int)   {}
func (NopRecorder) WindowEmpty(string)               {}
