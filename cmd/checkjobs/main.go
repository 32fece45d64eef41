package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CronJobLog mirrors the model for checking
type CronJobLog struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	JobName     string
	Status      string
	StartedAt   time.Time
	CompletedAt *time.Time
	Duration    int64
	Message     string
	ErrorMsg    string
}

func (CronJobLog) TableName() string {
	return "cron_job_logs"
}

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Build database URL from individual variables
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER_NAME")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}

	dbURL := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	// Connect to database
	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	fmt.Println("========================================")
	fmt.Println("SCHEDULED JOBS STATUS CHECK")
	fmt.Println("========================================")

	var jobs []CronJobLog
	if err := db.Order("started_at DESC").Limit(30).Find(&jobs).Error; err != nil {
		log.Fatalf("Failed to fetch job logs: %v", err)
	}

	if len(jobs) == 0 {
		fmt.Println("\nNo job runs recorded yet")
	} else {
		fmt.Printf("\nLast %d job runs:\n\n", len(jobs))

		for _, job := range jobs {
			statusIcon := "⏳"
			switch job.Status {
			case "completed":
				statusIcon = "✅"
			case "failed":
				statusIcon = "❌"
			case "running":
				statusIcon = "🔄"
			}

			fmt.Printf("─────────────────────────────────────\n")
			fmt.Printf("%s %s (run %d)\n", statusIcon, job.JobName, job.ID)
			fmt.Printf("   Status: %s\n", job.Status)
			fmt.Printf("   Started: %s\n", job.StartedAt.Format("2006-01-02 15:04:05"))
			if job.CompletedAt != nil {
				fmt.Printf("   Completed: %s (%dms)\n", job.CompletedAt.Format("2006-01-02 15:04:05"), job.Duration)
			}
			if job.Message != "" {
				fmt.Printf("   Message: %s\n", truncate(job.Message, 80))
			}
			if job.ErrorMsg != "" {
				fmt.Printf("   Error: %s\n", truncate(job.ErrorMsg, 80))
			}
		}
	}

	// Jobs stuck in running state longer than an hour usually mean a crashed run
	var stuck []CronJobLog
	db.Where("status = ? AND started_at < ?", "running", time.Now().Add(-1*time.Hour)).Find(&stuck)

	fmt.Println("\n========================================")
	fmt.Printf("STUCK JOBS: %d\n", len(stuck))
	fmt.Println("========================================")

	for _, job := range stuck {
		fmt.Printf("⚠️  %s (run %d) running since %s\n",
			job.JobName, job.ID, job.StartedAt.Format("2006-01-02 15:04:05"))
	}

	fmt.Println("\n========================================")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
