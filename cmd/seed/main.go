package main

import (
	"errors"
	"log"
	"os"

	"github.com/servicedesk/backend/internal/apperrors"
	"github.com/servicedesk/backend/internal/database"
	"github.com/servicedesk/backend/internal/models"
	"github.com/servicedesk/backend/internal/services"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Connect to database
	database.Connect()

	// Run migrations first
	log.Println("Running database migrations...")
	database.AutoMigrate()

	log.Println("Seeding database with initial data...")

	userService := services.NewUserService(database.DB)
	if err := userService.EnsureSeedRoles(models.RoleUser, models.RoleAdmin); err != nil {
		log.Fatalf("Error seeding roles: %v", err)
	}

	seedTaxonomies()
	seedAdmin(userService)

	log.Println("Database seeding completed successfully!")
}

func seedTaxonomies() {
	priorities := services.NewLookupService[models.Priority](database.DB, "priority")
	for _, level := range []string{"Low", "Medium", "High", "Critical"} {
		createLookup(priorities.Create(&models.Priority{Level: level}))
	}

	impacts := services.NewLookupService[models.Impact](database.DB, "impact")
	for _, description := range []string{"Low", "Moderate", "Severe"} {
		createLookup(impacts.Create(&models.Impact{Description: description}))
	}

	urgencies := services.NewLookupService[models.Urgency](database.DB, "urgency")
	for _, level := range []string{"Low", "High", "Immediate"} {
		createLookup(urgencies.Create(&models.Urgency{Level: level}))
	}

	categories := services.NewLookupService[models.Category](database.DB, "category")
	for _, name := range []string{"Hardware", "Software", "Network", "Access"} {
		createLookup(categories.Create(&models.Category{Name: name}))
	}

	resolutionCodes := services.NewLookupService[models.ResolutionCode](database.DB, "resolution code")
	for _, row := range []models.ResolutionCode{
		{Code: "FIXED", Description: "Root cause fixed"},
		{Code: "WORKAROUND", Description: "Workaround provided"},
		{Code: "NOT_REPRODUCIBLE", Description: "Could not reproduce"},
		{Code: "DUPLICATE", Description: "Duplicate of another incident"},
	} {
		createLookup(resolutionCodes.Create(&models.ResolutionCode{Code: row.Code, Description: row.Description}))
	}

	pendingReasons := services.NewLookupService[models.PendingReason](database.DB, "pending reason")
	for _, reason := range []string{"Awaiting caller", "Awaiting vendor", "Awaiting change window"} {
		createLookup(pendingReasons.Create(&models.PendingReason{Reason: reason}))
	}
}

func createLookup[T any](row *T, err error) {
	if err == nil {
		return
	}
	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		return
	}
	log.Printf("Error seeding lookup row: %v", err)
}

func seedAdmin(userService *services.UserService) {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Println("SEED_ADMIN_PASSWORD not set, skipping admin user")
		return
	}

	adminRole, err := userService.GetRoleByName(models.RoleAdmin)
	if err != nil {
		log.Printf("Error loading admin role: %v", err)
		return
	}

	_, err = userService.CreateUser(&models.User{
		Username: "admin",
		Email:    "admin@servicedesk.local",
		FullName: "Service Desk Administrator",
		Password: password,
		Roles:    []models.Role{*adminRole},
	})
	if err != nil {
		var conflict *apperrors.ConflictError
		if errors.As(err, &conflict) {
			log.Println("Admin user already exists")
			return
		}
		log.Printf("Error creating admin user: %v", err)
		return
	}
	log.Println("Created admin user")
}
