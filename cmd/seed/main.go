// Command seed loads a YAML catalog fixture into the configured database.
// Running it again against the same file creates nothing new.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/coursecatalog-backend/internal/app"
	"github.com/yungbote/coursecatalog-backend/internal/modules/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

func main() {
	file := flag.String("file", "catalog.yaml", "path to the catalog fixture")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall import timeout")
	flag.Parse()

	app.LoadEnv()
	mode := os.Getenv("LOG_MODE")
	if mode == "" {
		mode = "development"
	}
	log, err := logger.New(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, *file, *timeout); err != nil {
		log.Error("seed failed", "file", *file, "error", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger, path string, timeout time.Duration) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	seed, err := catalog.ParseSeed(f)
	if err != nil {
		return err
	}

	dbService, err := app.OpenDB(log)
	if err != nil {
		return err
	}
	defer dbService.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	rep, err := catalog.NewFromDB(dbService.DB(), log, catalog.Options{}).ImportSeed(ctx, seed)
	if err != nil {
		return err
	}
	fmt.Printf("categories created: %d\ncourses created: %d (reused %d)\nmodules created: %d\nquizzes created: %d\nquestions created: %d\ncategory links created: %d\n",
		rep.CategoriesCreated, rep.CoursesCreated, rep.CoursesReused, rep.ModulesCreated, rep.QuizzesCreated, rep.QuestionsCreated, rep.LinksCreated)
	return nil
}
