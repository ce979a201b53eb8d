// authctl is a small CLI exercising the auth client end to end: log in, show
// the current user, refresh, and log out, with tokens persisted to disk
// between invocations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tipspace/go-auth-client/api"
	"github.com/tipspace/go-auth-client/authclient"
	"github.com/tipspace/go-auth-client/internal/config"
	"github.com/tipspace/go-auth-client/session"
	"github.com/tipspace/go-auth-client/session/filestorage"
	"github.com/tipspace/go-auth-client/session/redisstorage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	email := flag.String("email", "", "email address for login")
	password := flag.String("password", "", "password for login")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	cfg := config.New()
	displayAppname(cfg.GetAppName())

	storage, err := buildStorage(cfg)
	if err != nil {
		return err
	}
	store := session.New(storage)

	transport, err := api.NewClient(cfg.GetAPIBaseURL(), api.WithLogger(logger))
	if err != nil {
		return err
	}

	client, err := authclient.New(transport, store,
		authclient.WithLogger(logger),
		authclient.WithProactiveRefresh(),
	)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := client.Restore(ctx); err != nil {
		return err
	}

	switch flag.Arg(0) {
	case "login":
		return login(ctx, client, *email, *password)
	case "whoami":
		return whoami(ctx, client, store)
	case "refresh":
		return client.RefreshAccessToken(ctx)
	case "logout":
		return client.Logout(ctx)
	default:
		return fmt.Errorf("usage: authctl [flags] login|whoami|refresh|logout")
	}
}

func login(ctx context.Context, client *authclient.Client, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("login requires -email and -password")
	}
	user, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if user != nil {
		fmt.Printf("Logged in as %s\n", user.Email)
	} else {
		fmt.Println("Logged in")
	}
	return nil
}

func whoami(ctx context.Context, client *authclient.Client, store *session.Store) error {
	if !store.IsAuthenticated() {
		fmt.Println("Not logged in")
		return nil
	}
	user, err := client.FetchCurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s (%s)\n", user.Username, user.Email)
	return nil
}

// buildStorage picks the token storage backend: Redis when configured, a
// local file otherwise.
func buildStorage(cfg config.Config) (session.Storage, error) {
	if addr := cfg.GetRedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		return redisstorage.New(client, cfg.GetAppName())
	}
	return filestorage.New(cfg.GetTokenFile())
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
