package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileLogger records build sessions to files in a log directory. It creates
// one timestamped log file per build and maintains a latest.log symlink
// pointing to the most recent one. It is thread-safe and supports the same
// level filtering as ConsoleLogger.
type FileLogger struct {
	logDir   string
	buildLog *os.File
	logFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger writing into logDir, creating the
// directory if needed. Each logger instance opens its own
// build-YYYYMMDD-HHMMSS.log file and points latest.log at it.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Generate timestamped filename: build-YYYYMMDD-HHMMSS.log
	ts := time.Now().Format("20060102-150405")
	logFile := filepath.Join(logDir, fmt.Sprintf("build-%s.log", ts))

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create build log file: %w", err)
	}

	// Create/update latest.log symlink
	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(logFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		buildLog: file,
		logFile:  logFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.write("=== docsmith build log ===\n")
	logger.write(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if
// filtering allows it.
func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	fl.write(fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message))
}

// LogBuildSummary logs the final build statistics at INFO level.
func (fl *FileLogger) LogBuildSummary(stats BuildStats) {
	if !fl.shouldLog("info") {
		return
	}

	ts := time.Now().Format("15:04:05")
	message := fmt.Sprintf(
		"\n[%s] === BUILD SUMMARY ===\n"+
			"[%s] Documents: %d (%d drafts skipped)\n"+
			"[%s] Pages:     %d\n"+
			"[%s] Sidebars:  %d\n"+
			"[%s] Duration:  %.1fs\n"+
			"[%s] Completed at: %s\n",
		ts,
		ts, stats.Documents, stats.Skipped,
		ts, stats.Pages,
		ts, stats.Sidebars,
		ts, stats.Duration.Seconds(),
		ts, time.Now().Format(time.RFC3339),
	)

	fl.write(message)
}

// Path returns the log file this logger writes to.
func (fl *FileLogger) Path() string {
	return fl.logFile
}

// Close flushes and closes the build log file. It should be called when the
// logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.buildLog != nil {
		if err := fl.buildLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync build log: %w", err)
		}
		if err := fl.buildLog.Close(); err != nil {
			return fmt.Errorf("failed to close build log: %w", err)
		}
		fl.buildLog = nil
	}

	return nil
}

// write is a thread-safe helper to append to the build log file.
func (fl *FileLogger) write(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.buildLog != nil {
		fl.buildLog.WriteString(message)
		// Flush after each write so tailing the log shows live progress
		fl.buildLog.Sync()
	}
}
