package transcript

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/meetlog/pkg/apperror"
)

var (
	reSrtTime  = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}[,.]\d{3}\s+-->`)
	reSrtIndex = regexp.MustCompile(`^\d+$`)
)

// Load reads the document at path. The format is picked by extension.
func (l *implLoader) Load(ctx context.Context, path string) (Transcript, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Transcript{}, apperror.ErrFileNotFound(path, err)
		}
		return Transcript{}, apperror.ErrParse(path, err)
	}
	if info.IsDir() {
		return Transcript{}, apperror.ErrParse(path, fmt.Errorf("%s is a directory", path))
	}

	l.logger.Info(ctx, "Reading transcript: %s", path)

	var paragraphs []string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".docx":
		paragraphs, err = readDocx(path)
	case ".txt":
		paragraphs, err = readText(path)
	case ".srt":
		paragraphs, err = readSRT(path)
	default:
		err = fmt.Errorf("unsupported transcript format %q", ext)
	}
	if err != nil {
		return Transcript{}, apperror.ErrParse(path, err)
	}

	t := Transcript{Source: path, Paragraphs: paragraphs}
	l.logger.Debug(ctx, "Transcript loaded: %d paragraphs, %d words", len(paragraphs), t.Words())
	if t.Words() == 0 {
		l.logger.Warn(ctx, "Transcript %s has no text, summary will be empty", path)
	}

	return t, nil
}

// readDocx returns the text of every top-level body paragraph, tables excluded.
func readDocx(path string) ([]string, error) {
	doc, err := godocx.OpenDocument(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	if doc.Document == nil || doc.Document.Body == nil {
		return nil, fmt.Errorf("docx has no document body")
	}

	paragraphs := make([]string, 0, len(doc.Document.Body.Children))
	for _, child := range doc.Document.Body.Children {
		if child.Para == nil {
			continue
		}
		paragraphs = append(paragraphs, paragraphText(child.Para))
	}

	return paragraphs, nil
}

// paragraphText renders a paragraph the way Word shows it: hyperlink text
// included, line breaks as "\n" and tabs as "\t".
func paragraphText(p *docx.Paragraph) string {
	var sb strings.Builder
	for _, pc := range p.GetCT().Children {
		run := pc.Run
		if run == nil && pc.Link != nil {
			run = pc.Link.Run
		}
		if run == nil {
			continue
		}
		for _, rc := range run.Children {
			switch {
			case rc.Text != nil:
				sb.WriteString(rc.Text.Text)
			case rc.Tab != nil:
				sb.WriteByte('\t')
			case rc.Break != nil:
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

func readText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	var paragraphs []string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs, nil
}

// readSRT keeps only the dialogue lines of a subtitle file.
// Sequence numbers and timestamps are dropped, consecutive repeats collapsed.
func readSRT(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}

	content := strings.TrimPrefix(string(data), "\ufeff")

	var paragraphs []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || reSrtIndex.MatchString(trimmed) || reSrtTime.MatchString(trimmed) {
			continue
		}
		if n := len(paragraphs); n > 0 && paragraphs[n-1] == trimmed {
			continue
		}
		paragraphs = append(paragraphs, trimmed)
	}
	return paragraphs, nil
}
