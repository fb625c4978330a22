// Command session-token mints a dashboard session cookie for a user id, and can
// grant that user admin rights first.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/go-gin-order-dashboard/internal/app/api"
	userdomain "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/domain"
)

func main() {
	userID := flag.String("user", "", "user id to sign into the session")
	grantAdmin := flag.Bool("grant-admin", false, "store the user as an admin before signing")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("ignoring .env: %v", err)
	}
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	codec, err := cfg.NewSessionCodec()
	if err != nil {
		log.Fatal(err)
	}

	if *grantAdmin {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		repos, cleanup := api.BuildRepositories(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
		defer cleanup()
		if !repos.Durable {
			log.Fatal("POSTGRES_DSN not set or connection failed; cannot grant admin")
		}
		user, err := userdomain.NewUser(*userID, true)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := repos.Users.Save(ctx, user); err != nil {
			log.Fatalf("failed to store admin: %v", err)
		}
	}

	value, err := codec.Encode(*userID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(codec.Cookie(value).String())
}
