package domain

import (
	"strings"
	"time"
)

// SourceFile is a discovered file loaded into memory.
type SourceFile struct {
	Path         string
	Content      string
	Language     Language
	Size         int64
	LastModified time.Time
}

// NewSourceFile builds a SourceFile, detecting the language from the path.
func NewSourceFile(path, content string) SourceFile {
	lang, _ := LanguageForPath(path)
	return SourceFile{
		Path:     path,
		Content:  content,
		Language: lang,
		Size:     int64(len(content)),
	}
}

// Lines returns the number of lines in the content.
func (f SourceFile) Lines() int {
	if f.Content == "" {
		return 0
	}
	n := strings.Count(f.Content, "\n")
	if !strings.HasSuffix(f.Content, "\n") {
		n++
	}
	return n
}
