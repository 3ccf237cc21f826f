package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"claresys/internal/session"
	"claresys/pkg/client"
	"claresys/pkg/config"
)

const ServiceName = "claresys"

// app carries the shared wiring every command needs: configuration, the
// authenticated session and the collaborator clients behind one transport.
type app struct {
	cfg  *config.Config
	sess *session.Session
	api  *client.Client
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.LogConfiguration()

	store := session.NewStore(cfg.TokenFile)
	sess := session.New(store, cfg.Log)
	if err := sess.Bootstrap(); err != nil {
		cfg.Log.Fatal("Failed to restore session", "error", err)
	}

	api := client.New(cfg.APIBaseURL, cfg.RequestTimeout,
		client.WithTokenSource(sess),
		client.WithUnauthorizedHook(sess.Invalidate),
	)

	a := &app{cfg: cfg, sess: sess, api: api}

	cliApp := &cli.App{
		Name:  ServiceName,
		Usage: "classroom reservation client",
		Commands: []*cli.Command{
			a.loginCommand(),
			a.logoutCommand(),
			a.classroomsCommand(),
			a.bookingsCommand(),
			a.usersCommand(),
			a.ticketsCommand(),
			a.auditCommand(),
			a.reportCommand(),
			a.watchCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		cfg.Log.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
