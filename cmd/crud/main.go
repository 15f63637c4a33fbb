// Command crud is the demo client for the simplecrud API. Each run opens the
// local session store, restores any saved session, and dispatches a single
// subcommand, so signed-in state survives between invocations.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"simplecrud/internal/client/api"
	"simplecrud/internal/client/auth"
	"simplecrud/internal/client/session"
	"simplecrud/internal/client/ui"
	"simplecrud/internal/config"
	"simplecrud/internal/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	if err := run(cfg, logger, os.Args[1:]); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func run(cfg *config.AppConfig, logger zerolog.Logger, args []string) error {
	ctx := context.Background()

	store, err := session.Open(ctx, cfg.Client.StorePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client := api.NewClient(cfg.Client.BaseURL)
	authCtx := auth.NewContext(client, store, logger)
	if err := authCtx.Restore(ctx); err != nil {
		logger.Warn().Err(err).Msg("session restore failed")
	}

	if len(args) == 0 {
		fmt.Print(ui.Header(authCtx))
		fmt.Print(ui.Profile(authCtx))
		return nil
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: crud login <email> <password>")
		}
		user, err := authCtx.Login(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s\n", user.Email)

	case "logout":
		if err := authCtx.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("signed out")

	case "register":
		if len(args) != 3 {
			return fmt.Errorf("usage: crud register <email> <password>")
		}
		resp, err := client.Register(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("registered %s (id %d)\n", resp.User.Email, resp.User.ID)

	case "whoami":
		fmt.Print(ui.Profile(authCtx))

	case "users":
		users, err := client.ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, user := range users {
			fmt.Printf("%d\t%s\n", user.ID, user.Email)
		}

	case "user":
		if len(args) != 2 {
			return fmt.Errorf("usage: crud user <id>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[1])
		}
		user, err := client.GetUser(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%d\t%s\t%s\n", user.ID, user.Email, user.CreatedAt.Format("2006-01-02"))

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	return nil
}
