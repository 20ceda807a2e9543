// Command tokengen prints an access token for local testing and operator use.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/coursecatalog-backend/internal/app"
	"github.com/yungbote/coursecatalog-backend/internal/platform/envutil"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
	"github.com/yungbote/coursecatalog-backend/internal/services"
)

func main() {
	user := flag.String("user", "", "user id (a new one is generated when empty)")
	staff := flag.Bool("staff", false, "grant staff access")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	app.LoadEnv()
	log := logger.Nop()

	userID := uuid.New()
	if *user != "" {
		parsed, err := uuid.Parse(*user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -user: %v\n", err)
			os.Exit(2)
		}
		userID = parsed
	}

	secret := envutil.String("JWT_SECRET_KEY", "", log)
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET_KEY must be set")
		os.Exit(2)
	}
	auth := services.NewAuthService(log, secret, envutil.String("JWT_ISSUER", "", log), *ttl)
	tok, err := auth.IssueAccessToken(userID, *staff, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "user=%s staff=%v expires_in=%s\n", userID, *staff, *ttl)
	fmt.Println(tok)
}
