package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const (
	logFilePrefix  = "alonix-notify_"
	logStampLayout = "20060102_150405"
)

// logFileName is {prefix}{start}_PID{pid}_{command}.log.
func logFileName(started time.Time, pid int, command string) string {
	return fmt.Sprintf("%s%s_PID%d_%s.log",
		logFilePrefix, started.Format(logStampLayout), pid, strings.ReplaceAll(command, " ", "_"))
}

// logFileStart recovers the start time from a name built by logFileName.
func logFileStart(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
		return time.Time{}, false
	}
	rest := strings.TrimPrefix(name, logFilePrefix)
	if len(rest) < len(logStampLayout) {
		return time.Time{}, false
	}
	started, err := time.ParseInLocation(logStampLayout, rest[:len(logStampLayout)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return started, true
}

type logFile struct {
	path    string
	started time.Time
}

// prune deletes log files in dir that started before now-MaxAge, then the
// oldest ones beyond MaxFiles. Files not named by logFileName are left alone.
// It returns how many files were removed.
func (r Retention) prune(dir string, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if started, ok := logFileStart(entry.Name()); ok {
			files = append(files, logFile{path: filepath.Join(dir, entry.Name()), started: started})
		}
	}
	slices.SortFunc(files, func(a, b logFile) int { return a.started.Compare(b.started) })

	var stale []logFile
	if r.MaxAge > 0 {
		cutoff := now.Add(-r.MaxAge)
		for len(files) > 0 && files[0].started.Before(cutoff) {
			stale = append(stale, files[0])
			files = files[1:]
		}
	}
	if r.MaxFiles > 0 && len(files) > r.MaxFiles {
		extra := len(files) - r.MaxFiles
		stale = append(stale, files[:extra]...)
	}

	removed := 0
	var errs []error
	for _, f := range stale {
		if err := os.Remove(f.path); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}
