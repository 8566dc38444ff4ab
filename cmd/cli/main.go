package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dansdevelopments/catalog-admin/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	username := addUserCmd.String("username", "", "Username for the new user")
	password := addUserCmd.String("password", "", "Password for the new user")

	addCategoryCmd := flag.NewFlagSet("add-category", flag.ExitOnError)
	categoryName := addCategoryCmd.String("name", "", "Name of the new category")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-user' or 'add-category' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *username == "" || *password == "" {
			fmt.Println("username and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		createUser(*username, *password)
	case "add-category":
		addCategoryCmd.Parse(os.Args[2:])
		if *categoryName == "" {
			fmt.Println("name is required")
			addCategoryCmd.PrintDefaults()
			os.Exit(1)
		}
		createCategory(*categoryName)
	default:
		fmt.Println("expected 'add-user' or 'add-category' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./catalog.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running cli before server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func createUser(username, password string) {
	db := openStore()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.CreateUser(username, string(hashedPassword)); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' created successfully.\n", username)
}

func createCategory(name string) {
	db := openStore()

	if err := db.CreateCategory(name); err != nil {
		log.Fatalf("Failed to create category: %v", err)
	}

	fmt.Printf("Category '%s' created successfully.\n", name)
}
