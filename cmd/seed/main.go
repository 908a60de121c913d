package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/opentraining/coursecatalog/internal/infrastructure/clients/postgres"
	"github.com/opentraining/coursecatalog/pkg/config"
)

type seedCourse struct {
	slug          string
	title         string
	audience      string
	prerequisites string
	level         *string
	duration      *string
	format        *string
	priceText     string
	priceNumeric  *float64
	category      string
	syllabus      []seedDay
	tags          []string
}

type seedDay struct {
	day     int
	title   string
	content string
}

func strPtr(s string) *string { return &s }

func numPtr(f float64) *float64 { return &f }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	db := goqu.New("postgres", pgClient.DB())
	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				course_tags,
				tags,
				syllabus_days,
				courses,
				categories
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed categories
	categories := []struct{ name, slug string }{
		{"Software Development", "software-development"},
		{"Data & AI", "data-ai"},
		{"Cloud & DevOps", "cloud-devops"},
		{"Management", "management"},
	}

	categoryIDs := map[string]int64{}
	for _, c := range categories {
		insert, args, err := db.Insert("categories").
			Rows(goqu.Record{"name": c.name, "slug": c.slug}).
			Returning("id").
			ToSQL()
		if err != nil {
			log.Fatalf("Failed to build category insert: %v", err)
		}
		var id int64
		if err := pgClient.DB().QueryRowContext(ctx, insert, args...).Scan(&id); err != nil {
			log.Printf("Failed to create category %s: %v", c.name, err)
			continue
		}
		categoryIDs[c.name] = id
	}

	// 2. Seed courses with syllabus and tags
	courses := []seedCourse{
		{
			slug:          "go-fundamentals",
			title:         "Go Fundamentals",
			audience:      "Backend developers new to Go",
			prerequisites: "Experience with at least one programming language",
			level:         strPtr("Beginner"),
			duration:      strPtr("3 days"),
			format:        strPtr("In-person"),
			priceText:     "$1,800 per attendee",
			priceNumeric:  numPtr(1800),
			category:      "Software Development",
			syllabus: []seedDay{
				{1, "Language basics", "Syntax, types, functions, packages and tooling."},
				{2, "Concurrency", "Goroutines, channels, select and the sync package."},
				{3, "Production Go", "Testing, error handling, modules and deployment."},
			},
			tags: []string{"go", "backend"},
		},
		{
			slug:          "advanced-postgresql",
			title:         "Advanced PostgreSQL",
			audience:      "Engineers operating relational databases in production",
			prerequisites: "Solid SQL knowledge",
			level:         strPtr("Advanced"),
			duration:      strPtr("2 days"),
			format:        strPtr("Remote"),
			priceText:     "$1,500 per attendee",
			priceNumeric:  numPtr(1500),
			category:      "Software Development",
			syllabus: []seedDay{
				{1, "Query planning", "Reading explain plans, indexes and statistics."},
				{2, "Operations", "Replication, vacuum tuning and backup strategies."},
			},
			tags: []string{"sql", "databases"},
		},
		{
			slug:          "machine-learning-intro",
			title:         "Introduction to Machine Learning",
			audience:      "Analysts and developers starting with ML",
			prerequisites: "Basic statistics and Python",
			level:         strPtr("Beginner"),
			duration:      strPtr("1 week"),
			format:        strPtr("Hybrid"),
			priceText:     "$2,900 per attendee",
			priceNumeric:  numPtr(2900),
			category:      "Data & AI",
			syllabus: []seedDay{
				{1, "Foundations", "Supervised vs unsupervised learning, evaluation."},
				{2, "Regression", "Linear models, regularization, feature engineering."},
				{3, "Classification", "Trees, ensembles and metrics."},
				{4, "Pipelines", "Data preparation and reproducible training."},
				{5, "Deployment", "Serving models and monitoring drift."},
			},
			tags: []string{"python", "machine-learning"},
		},
		{
			slug:          "kubernetes-operations",
			title:         "Kubernetes in Operations",
			audience:      "Platform and SRE teams",
			prerequisites: "Container basics (Docker)",
			level:         strPtr("Intermediate"),
			duration:      strPtr("3 days"),
			format:        strPtr("In-person"),
			priceText:     "$2,200 per attendee",
			priceNumeric:  numPtr(2200),
			category:      "Cloud & DevOps",
			syllabus: []seedDay{
				{1, "Cluster anatomy", "Control plane, nodes, networking and storage."},
				{2, "Workloads", "Deployments, operators and autoscaling."},
				{3, "Day two", "Observability, upgrades and incident response."},
			},
			tags: []string{"kubernetes", "devops"},
		},
		{
			slug:          "agile-team-leadership",
			title:         "Agile Team Leadership",
			audience:      "New engineering managers and tech leads",
			prerequisites: "",
			level:         strPtr("Intermediate"),
			duration:      strPtr("1 day"),
			format:        strPtr("Remote"),
			priceText:     "Contact us for group pricing",
			priceNumeric:  nil,
			category:      "Management",
			syllabus: []seedDay{
				{1, "Leading delivery", "Facilitation, prioritization and feedback loops."},
			},
			tags: []string{"leadership", "agile"},
		},
	}

	tagIDs := map[string]int64{}

	for _, c := range courses {
		now := time.Now()
		record := goqu.Record{
			"id":            uuid.New().String(),
			"slug":          c.slug,
			"title":         c.title,
			"audience":      c.audience,
			"prerequisites": c.prerequisites,
			"level":         c.level,
			"duration":      c.duration,
			"format":        c.format,
			"price_text":    c.priceText,
			"price_numeric": c.priceNumeric,
			"created_at":    now,
			"updated_at":    now,
		}
		if catID, ok := categoryIDs[c.category]; ok {
			record["category_id"] = catID
		}

		insert, args, err := db.Insert("courses").Rows(record).Returning("id").ToSQL()
		if err != nil {
			log.Fatalf("Failed to build course insert: %v", err)
		}
		var courseID string
		if err := pgClient.DB().QueryRowContext(ctx, insert, args...).Scan(&courseID); err != nil {
			log.Printf("Failed to create course %s: %v", c.title, err)
			continue
		}

		for _, d := range c.syllabus {
			insert, args, err := db.Insert("syllabus_days").
				Rows(goqu.Record{"course_id": courseID, "day": d.day, "title": d.title, "content": d.content}).
				ToSQL()
			if err != nil {
				log.Fatalf("Failed to build syllabus insert: %v", err)
			}
			if _, err := pgClient.DB().ExecContext(ctx, insert, args...); err != nil {
				log.Printf("Failed to create syllabus day %d for %s: %v", d.day, c.slug, err)
			}
		}

		for _, name := range c.tags {
			tagID, ok := tagIDs[name]
			if !ok {
				rec := goqu.Record{"name": name}
				if catID, found := categoryIDs[c.category]; found {
					rec["category_id"] = catID
				}
				insert, args, err := db.Insert("tags").Rows(rec).Returning("id").ToSQL()
				if err != nil {
					log.Fatalf("Failed to build tag insert: %v", err)
				}
				if err := pgClient.DB().QueryRowContext(ctx, insert, args...).Scan(&tagID); err != nil {
					log.Printf("Failed to create tag %s: %v", name, err)
					continue
				}
				tagIDs[name] = tagID
			}

			insert, args, err := db.Insert("course_tags").
				Rows(goqu.Record{"course_id": courseID, "tag_id": tagID}).
				ToSQL()
			if err != nil {
				log.Fatalf("Failed to build course_tags insert: %v", err)
			}
			if _, err := pgClient.DB().ExecContext(ctx, insert, args...); err != nil {
				log.Printf("Failed to link tag %s to %s: %v", name, c.slug, err)
			}
		}
	}

	log.Printf("Seeding complete: %d categories, %d courses", len(categoryIDs), len(courses))
}
