// Package loader parses chat transcript files into a sorted timeline.
//
// Two formats are supported: the popcorn XML export (a root <popcorn> node
// whose children carry "in", "name" and "message" attributes) and a JSON-lines
// form with the same field names, one message object per line.
package loader

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/overlayfx/go-chat-overlay/internal/core/model"
	"github.com/overlayfx/go-chat-overlay/internal/util"
)

// LoadError reports a transcript that could not be opened or parsed. Callers
// must treat it as "timeline becomes empty", never keep a partial one.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type chatRecord struct {
	In      float64 `xml:"in,attr" json:"in"`
	Name    string  `xml:"name,attr" json:"name"`
	Message string  `xml:"message,attr" json:"message"`
}

type popcornDoc struct {
	XMLName xml.Name     `xml:"popcorn"`
	Events  []chatRecord `xml:",any"`
}

// Load reads the transcript at path and returns a time-sorted timeline.
// The format is chosen by extension: .json/.jsonl are parsed as JSON lines,
// everything else as popcorn XML.
func Load(path string) (model.Timeline, error) {
	var (
		timeline model.Timeline
		err      error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl":
		timeline, err = loadJSONLines(path)
	default:
		timeline, err = loadPopcornXML(path)
	}
	if err != nil {
		return nil, err
	}

	// Should already be sorted, but make sure
	timeline.Sort()

	util.LogDebugf("Loaded %d chat entries from %s", len(timeline), path)
	return timeline, nil
}

func loadPopcornXML(path string) (model.Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var doc popcornDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	timeline := make(model.Timeline, 0, len(doc.Events))
	for _, ev := range doc.Events {
		timeline = append(timeline, model.ChatEntry{
			Time:   ev.In,
			Author: ev.Name,
			Text:   ev.Message,
		})
	}
	return timeline, nil
}

func loadJSONLines(path string) (model.Timeline, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	var timeline model.Timeline
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec chatRecord
		if err := sonic.Unmarshal([]byte(line), &rec); err != nil {
			util.LogDebugf("Skip invalid JSON line %s:%d - %v", path, lineCount, err)
			continue
		}
		timeline = append(timeline, model.ChatEntry{
			Time:   rec.In,
			Author: rec.Name,
			Text:   rec.Message,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return timeline, nil
}
