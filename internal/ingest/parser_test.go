package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCourse = `Course Title: Intro to Python
Course Link: https://example.com/courses/intro-python
Course Instructor: Jane Doe

Lesson 0: Introduction
Lesson Link: https://example.com/courses/intro-python/lesson/0
Welcome to the course. Python is a programming language.

Lesson 1: Variables
Variables hold values.
They have names.
`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleCourse))
	require.NoError(t, err)

	assert.Equal(t, "Intro to Python", doc.Title)
	assert.Equal(t, "https://example.com/courses/intro-python", doc.Link)
	assert.Equal(t, "Jane Doe", doc.Instructor)

	require.Len(t, doc.Lessons, 2)

	assert.Equal(t, 0, doc.Lessons[0].Number)
	assert.Equal(t, "Introduction", doc.Lessons[0].Title)
	assert.Equal(t, "https://example.com/courses/intro-python/lesson/0", doc.Lessons[0].Link)
	assert.Contains(t, doc.Lessons[0].Content, "Welcome to the course")

	assert.Equal(t, 1, doc.Lessons[1].Number)
	assert.Equal(t, "Variables", doc.Lessons[1].Title)
	assert.Empty(t, doc.Lessons[1].Link)
	assert.Equal(t, "Variables hold values.\nThey have names.", doc.Lessons[1].Content)
}

func TestParse_MissingTitle(t *testing.T) {
	_, err := Parse(strings.NewReader("Lesson 0: Intro\nsome content\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Course Title")
}

func TestParse_NoLessons(t *testing.T) {
	doc, err := Parse(strings.NewReader("Course Title: Empty Course\n"))
	require.NoError(t, err)
	assert.Equal(t, "Empty Course", doc.Title)
	assert.Empty(t, doc.Lessons)
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, ContentHash("same"), ContentHash("same"))
	assert.NotEqual(t, ContentHash("same"), ContentHash("different"))
}
