package main

import (
	"log"

	"github.com/netarcx/Mentor-Manager-sub001/app/config"
	"github.com/netarcx/Mentor-Manager-sub001/app/database"
)

func main() {
	log.Println("Running migrations...")

	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully")
}
