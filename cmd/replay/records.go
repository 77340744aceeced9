package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// RecordFile describes one recording on disk
type RecordFile struct {
	Name      string
	Size      int64
	Time      time.Time
	SessionID string
}

// listRecords returns the .jsonl files in dir, newest first. A missing
// directory is not an error.
func listRecords(dir string) ([]RecordFile, error) {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []RecordFile
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".jsonl" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		records = append(records, RecordFile{
			Name:      f.Name(),
			Size:      info.Size(),
			Time:      info.ModTime(),
			SessionID: sessionFromName(f.Name()),
		})
	}

	// Sort by time desc
	sort.Slice(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records, nil
}

// sessionFromName extracts the session from game_{sessionID}_{timestamp}.jsonl
func sessionFromName(name string) string {
	name = strings.TrimSuffix(name, ".jsonl")
	if !strings.HasPrefix(name, "game_") {
		return ""
	}
	name = strings.TrimPrefix(name, "game_")
	i := strings.LastIndex(name, "_")
	if i < 0 {
		return ""
	}
	return name[:i]
}
