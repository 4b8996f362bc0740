// Creates a superuser account. Usage:
//
//	go run ./scripts/create-admin.go -email admin@example.com -password secret
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/recipebox-dev/recipebox/db"
	"github.com/recipebox-dev/recipebox/internal/services"
)

func main() {
	godotenv.Load()

	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "", "Superuser email")
		password    = flag.String("password", "", "Superuser password")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-email and -password are required")
		os.Exit(1)
	}

	if err := db.ConnectDatabase(*databaseURL); err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}

	if err := db.MigrateDatabase(); err != nil {
		fmt.Fprintln(os.Stderr, "migrate database:", err)
		os.Exit(1)
	}

	user, err := services.CreateSuperuser(db.DB, *email, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create superuser:", err)
		os.Exit(1)
	}

	fmt.Printf("Created superuser %s (id=%d)\n", user.Email, user.ID)
}
