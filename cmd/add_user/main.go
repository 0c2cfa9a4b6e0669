// Command add_user creates or resets a dashboard admin account.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mbolis/campus-footprint/database"
	"github.com/mbolis/campus-footprint/log"
)

func main() {
	dbUrl := flag.String("db-url", "footprint.sqlite", "path to SQLite3 DB file")
	username := flag.String("username", "", "admin user name")
	flag.Parse()

	password := os.Getenv("FOOTPRINT_ADMIN_PASSWORD")
	if *username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "usage: FOOTPRINT_ADMIN_PASSWORD=... add_user -username NAME [-db-url FILE]")
		os.Exit(2)
	}

	db, err := database.Open(*dbUrl)
	if err != nil {
		log.Fatal("add_user.db.open:", err)
	}
	defer db.Close()

	if err := database.UpsertUser(context.Background(), db, *username, password); err != nil {
		log.Fatal("add_user.upsert:", err)
	}

	log.Infof("user %s saved", *username)
}
