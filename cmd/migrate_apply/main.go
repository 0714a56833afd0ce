// Command migrate_apply lists the SQL migrations under internal/migrations
// and, with -apply, runs them against DATABASE_URL in filename order. The
// schema and seed files are written to be idempotent, so re-running is safe.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	apply := flag.Bool("apply", false, "execute migrations instead of listing them")
	dir := flag.String("dir", filepath.Join("internal", "migrations"), "migrations directory")
	flag.Parse()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("read %s: %v", *dir, err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if !*apply {
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	for _, n := range names {
		sql, err := os.ReadFile(filepath.Join(*dir, n))
		if err != nil {
			log.Fatalf("read %s: %v", n, err)
		}
		if _, err := db.Exec(ctx, string(sql)); err != nil {
			log.Fatalf("apply %s: %v", n, err)
		}
		fmt.Printf("applied %s\n", n)
	}
}
