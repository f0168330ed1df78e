package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/netarcx/Mentor-Manager-sub001/app/config"
	"github.com/netarcx/Mentor-Manager-sub001/app/database"
	"github.com/netarcx/Mentor-Manager-sub001/app/models"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_admin -email user@example.com -password secret")
		os.Exit(1)
	}

	if err := config.Load(); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	db := config.GetDB()
	defer db.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	user := &models.AdminUser{
		Email:        *email,
		PasswordHash: hash,
		FirstName:    *firstName,
		LastName:     *lastName,
	}
	if err := database.CreateAdmin(db, user); err != nil {
		if err == database.ErrDuplicate {
			fmt.Printf("An admin with email %s already exists\n", *email)
		} else {
			fmt.Printf("Error creating admin: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Admin created: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
