// backend/internal/ingest/parser.go
package ingest

import (
	"bufio"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// CourseDocument is one parsed course script: a metadata header followed by
// numbered lessons.
type CourseDocument struct {
	Title      string
	Link       string
	Instructor string
	Lessons    []Lesson
}

type Lesson struct {
	Number  int
	Title   string
	Link    string
	Content string
}

var lessonMarker = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.+)$`)

// Parse reads a course script. The expected layout is:
//
//	Course Title: <title>
//	Course Link: <url>
//	Course Instructor: <name>
//
//	Lesson 0: Introduction
//	Lesson Link: <url>
//	<content...>
func Parse(r io.Reader) (*CourseDocument, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	doc := &CourseDocument{}
	var current *Lesson
	var content strings.Builder

	flush := func() {
		if current != nil {
			current.Content = strings.TrimSpace(content.String())
			doc.Lessons = append(doc.Lessons, *current)
			current = nil
		}
		content.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "Course Title:"):
			doc.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "Course Title:"))
		case strings.HasPrefix(trimmed, "Course Link:"):
			doc.Link = strings.TrimSpace(strings.TrimPrefix(trimmed, "Course Link:"))
		case strings.HasPrefix(trimmed, "Course Instructor:"):
			doc.Instructor = strings.TrimSpace(strings.TrimPrefix(trimmed, "Course Instructor:"))
		case lessonMarker.MatchString(trimmed):
			flush()
			matches := lessonMarker.FindStringSubmatch(trimmed)
			number, _ := strconv.Atoi(matches[1])
			current = &Lesson{Number: number, Title: strings.TrimSpace(matches[2])}
		case strings.HasPrefix(trimmed, "Lesson Link:") && current != nil && content.Len() == 0:
			current.Link = strings.TrimSpace(strings.TrimPrefix(trimmed, "Lesson Link:"))
		default:
			if current != nil {
				content.WriteString(line)
				content.WriteString("\n")
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read course document: %w", err)
	}

	if doc.Title == "" {
		return nil, fmt.Errorf("course document has no 'Course Title:' header")
	}

	return doc, nil
}

// ContentHash fingerprints a document so unchanged courses can be skipped on
// re-ingest.
func ContentHash(content string) string {
	hash := md5.Sum([]byte(content))
	return hex.EncodeToString(hash[:])
}
