// backend/cmd/ingest/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coursechat/backend/internal/config"
	"github.com/coursechat/backend/internal/database"
	"github.com/coursechat/backend/internal/engine"
	"github.com/coursechat/backend/internal/ingest"
	"github.com/coursechat/backend/internal/models"
	"github.com/coursechat/backend/internal/repository"
	"github.com/coursechat/backend/pkg/utils"
	"github.com/gocolly/colly/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	// Command line flags
	docsDir   = flag.String("docs", "./docs", "Directory of course script files to ingest")
	courseURL = flag.String("url", "", "Ingest a single course overview page from a URL instead of local files")
	dryRun    = flag.Bool("dry-run", false, "Don't upload to the engine, just print what would be uploaded")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	fileLimit = flag.Int("limit", 0, "Limit number of course files to process (0 = all)")
)

// CourseIngester uploads course material to the engine and records the catalog
type CourseIngester struct {
	engineService *engine.Service
	repoManager   *repository.RepositoryManager
	logger        *logrus.Logger
	errors        []error
}

func main() {
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	// Initialize logger
	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Info("Starting course material ingester...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	var engineService *engine.Service
	var repoManager *repository.RepositoryManager

	if !*dryRun {
		// Validate engine configuration
		if err := cfg.ValidateEngine(); err != nil {
			logger.WithError(err).Fatal("Engine configuration validation failed")
		}

		// Initialize database for catalog tracking
		dbConfig := &database.Config{
			DatabaseURL: cfg.Database.URL,
			RedisURL:    cfg.Redis.URL,
			LogLevel:    os.Getenv("LOG_LEVEL"),
		}

		dbManager, err := database.NewManager(dbConfig, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database manager")
		}
		defer dbManager.Close()

		if err := dbManager.Migrate(); err != nil {
			logger.WithError(err).Fatal("Database migration failed")
		}

		repoManager = repository.NewRepositoryManager(dbManager.DB)

		// Initialize engine client and service
		engineClient := engine.NewClient(cfg.Engine.BaseURL, cfg.Engine.APIKey, logger)
		engineService = engine.NewService(engineClient, logger)
	}

	ingester := &CourseIngester{
		engineService: engineService,
		repoManager:   repoManager,
		logger:        logger,
	}

	ctx := context.Background()

	if *courseURL != "" {
		if err := ingester.IngestURL(ctx, *courseURL); err != nil {
			logger.WithError(err).Fatal("Course page ingestion failed")
		}
	} else {
		if err := ingester.IngestDirectory(ctx, *docsDir); err != nil {
			logger.WithError(err).Fatal("Course ingestion failed")
		}
	}

	logger.Info("Course ingestion completed successfully!")
}

// IngestDirectory processes every course script file in a directory
func (ci *CourseIngester) IngestDirectory(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read docs directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := strings.ToLower(filepath.Ext(entry.Name())); ext == ".txt" || ext == ".md" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	if *fileLimit > 0 && *fileLimit < len(files) {
		files = files[:*fileLimit]
		ci.logger.WithField("limit", *fileLimit).Info("Limited files to process")
	}

	ci.logger.WithField("total_files", len(files)).Info("Processing course files")

	processed := 0
	for i, file := range files {
		ci.logger.WithFields(logrus.Fields{
			"file":     filepath.Base(file),
			"progress": fmt.Sprintf("%d/%d", i+1, len(files)),
		}).Info("Processing course file")

		if err := ci.processFile(ctx, file); err != nil {
			ci.logger.WithError(err).WithField("file", file).Error("Failed to process course file")
			ci.errors = append(ci.errors, fmt.Errorf("failed to process %s: %w", file, err))
			continue
		}
		processed++
	}

	ci.logger.WithFields(logrus.Fields{
		"processed": processed,
		"errors":    len(ci.errors),
	}).Info("Course ingestion completed")

	if len(ci.errors) > 0 {
		ci.logger.Warn("Some course files failed to process:")
		for _, err := range ci.errors {
			ci.logger.WithError(err).Warn("Processing error")
		}
	}

	return nil
}

func (ci *CourseIngester) processFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open course file: %w", err)
	}
	defer f.Close()

	doc, err := ingest.Parse(f)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to re-read course file: %w", err)
	}
	contentHash := ingest.ContentHash(string(raw))

	if *dryRun {
		ci.logger.WithFields(logrus.Fields{
			"course":  doc.Title,
			"lessons": len(doc.Lessons),
			"hash":    contentHash[:8],
		}).Info("DRY RUN: Would upload course")
		return nil
	}

	// Skip unchanged courses
	if existing, err := ci.repoManager.Course.GetByTitle(doc.Title); err == nil {
		if existing.ContentHash == contentHash && existing.IngestStatus == "completed" {
			ci.logger.WithField("course", doc.Title).Info("Course unchanged, skipping")
			return nil
		}
	}

	// Upload each lesson as its own document for better search granularity
	for _, lesson := range doc.Lessons {
		fileName := fmt.Sprintf("%s-lesson-%d.txt", slugify(doc.Title), lesson.Number)
		content := fmt.Sprintf("Course: %s\nLesson %d: %s\n\n%s",
			doc.Title, lesson.Number, lesson.Title, lesson.Content)

		if err := ci.engineService.AddCourseDocument(ctx, doc.Title, fileName, content); err != nil {
			return fmt.Errorf("failed to upload lesson %d: %w", lesson.Number, err)
		}
	}

	return ci.recordCourse(doc, contentHash)
}

// IngestURL scrapes one course overview page and uploads it as a
// single-document course
func (ci *CourseIngester) IngestURL(ctx context.Context, pageURL string) error {
	c := colly.NewCollector(
		colly.UserAgent("CourseChat-Ingest/1.0"),
	)
	c.SetRequestTimeout(30 * time.Second)

	var title string
	var content strings.Builder
	var scrapeErr error

	c.OnHTML("h1", func(e *colly.HTMLElement) {
		if title == "" {
			title = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML("p, li", func(e *colly.HTMLElement) {
		text := strings.TrimSpace(e.Text)
		if text != "" {
			content.WriteString(text)
			content.WriteString("\n")
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return fmt.Errorf("failed to visit course page: %w", err)
	}
	if scrapeErr != nil {
		return fmt.Errorf("scraping error: %w", scrapeErr)
	}

	if title == "" {
		title = pageURL
	}
	body := strings.TrimSpace(content.String())
	if body == "" {
		return fmt.Errorf("no content extracted from course page")
	}

	contentHash := ingest.ContentHash(body)

	if *dryRun {
		ci.logger.WithFields(logrus.Fields{
			"course":         title,
			"content_length": len(body),
			"hash":           contentHash[:8],
		}).Info("DRY RUN: Would upload scraped course")
		return nil
	}

	fileName := slugify(title) + ".txt"
	document := fmt.Sprintf("Course: %s\nCourse Link: %s\n\n%s", title, pageURL, body)
	if err := ci.engineService.AddCourseDocument(ctx, title, fileName, document); err != nil {
		return fmt.Errorf("failed to upload scraped course: %w", err)
	}

	return ci.recordCourse(&ingest.CourseDocument{Title: title, Link: pageURL}, contentHash)
}

func (ci *CourseIngester) recordCourse(doc *ingest.CourseDocument, contentHash string) error {
	now := time.Now()
	course := &models.Course{
		Title:        doc.Title,
		CourseLink:   doc.Link,
		Instructor:   doc.Instructor,
		LessonCount:  len(doc.Lessons),
		ContentHash:  contentHash,
		LastIngested: &now,
		IngestStatus: "completed",
		IsActive:     true,
	}

	existing, err := ci.repoManager.Course.GetByTitle(doc.Title)
	if err == nil {
		existing.CourseLink = course.CourseLink
		existing.Instructor = course.Instructor
		existing.LessonCount = course.LessonCount
		existing.ContentHash = contentHash
		existing.LastIngested = &now
		existing.IngestStatus = "completed"
		existing.IsActive = true

		return ci.repoManager.Course.Update(existing)
	}

	return ci.repoManager.Course.Create(course)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, s)
	return strings.Trim(s, "-")
}
