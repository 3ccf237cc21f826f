package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"claresys/internal/booking/controller"
	"claresys/internal/booking/validator"
	"claresys/internal/session"
	"claresys/pkg/client"
	apierrors "claresys/pkg/errors"
	"claresys/pkg/model"
)

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func (a *app) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "authenticate against the reservation service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"CLARESYS_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			err := a.sess.Login(c.Context, a.api.Auth.Login, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", c.String("email"), a.sess.Role())
			return nil
		},
	}
}

func (a *app) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "discard the stored session",
		Action: func(c *cli.Context) error {
			return a.sess.Logout()
		},
	}
}

func (a *app) classroomsCommand() *cli.Command {
	return &cli.Command{
		Name:  "classrooms",
		Usage: "list classrooms",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Usage: "include non-operational classrooms"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("all") {
				rooms, err := a.api.Classrooms.List(c.Context, client.ListClassroomsParams{})
				if err != nil {
					return err
				}
				return printJSON(rooms)
			}
			rooms, err := a.api.Classrooms.ListOperational(c.Context)
			if err != nil {
				return err
			}
			return printJSON(rooms)
		},
	}
}

func (a *app) bookingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "create, inspect and cancel bookings",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list bookings from the query projection",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user"},
					&cli.StringFlag{Name: "classroom"},
					&cli.StringFlag{Name: "status"},
					&cli.IntFlag{Name: "limit", Value: 50},
					&cli.Int64Flag{Name: "offset"},
				},
				Action: func(c *cli.Context) error {
					list, err := a.api.BookingQuery.List(c.Context, model.BookingFilter{
						UserID:       c.String("user"),
						ClassroomID:  c.String("classroom"),
						StatusFilter: c.String("status"),
						Limit:        c.Int("limit"),
						Offset:       c.Int64("offset"),
					})
					if err != nil {
						return err
					}
					return printJSON(list)
				},
			},
			{
				Name:      "get",
				Usage:     "show one booking",
				ArgsUsage: "<booking-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one booking id")
					}
					view, err := a.api.BookingQuery.Get(c.Context, c.Args().First())
					if apierrors.IsNotFound(err) {
						return fmt.Errorf("booking %s not found", c.Args().First())
					}
					if err != nil {
						return err
					}
					return printJSON(view)
				},
			},
			{
				Name:  "create",
				Usage: "submit a booking request",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "classroom", Usage: "classroom id (defaults to the first operational one)"},
					&cli.StringFlag{Name: "date", Required: true, Usage: "booking date, YYYY-MM-DD"},
					&cli.StringFlag{Name: "start", Value: "07:00", Usage: "start time, HH:MM"},
					&cli.StringFlag{Name: "end", Value: "08:00", Usage: "end time, HH:MM"},
					&cli.StringFlag{Name: "subject"},
				},
				Action: a.createBooking,
			},
			{
				Name:      "cancel",
				Usage:     "cancel a booking",
				ArgsUsage: "<booking-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one booking id")
					}
					ack, err := a.api.Bookings.Cancel(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return printJSON(ack)
				},
			},
		},
	}
}

// createBooking drives the submission controller the same way an interactive
// form would: load the catalog, fill the draft, submit once.
func (a *app) createBooking(c *cli.Context) error {
	if !a.sess.IsAuthenticated() {
		return session.ErrNotAuthenticated
	}

	date, err := time.ParseInLocation("2006-01-02", c.String("date"), time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", c.String("date"), err)
	}
	startHour, startMinute, err := parseClock(c.String("start"))
	if err != nil {
		return err
	}
	endHour, endMinute, err := parseClock(c.String("end"))
	if err != nil {
		return err
	}

	ctrl := controller.New(a.api.Classrooms, a.api.Bookings, a.sess.UserID(), a.cfg.Log)
	defer ctrl.Close()

	if err := ctrl.LoadCatalog(c.Context); err != nil {
		return err
	}
	if len(ctrl.Catalog()) == 0 {
		if err := ctrl.Err(); err != nil {
			return err
		}
		return fmt.Errorf("no operational classrooms available")
	}

	ctrl.SetDate(date)
	ctrl.SetStart(startHour, startMinute)
	ctrl.SetEnd(endHour, endMinute)
	ctrl.SetSubject(c.String("subject"))
	if id := c.String("classroom"); id != "" {
		ctrl.SetClassroom(id)
	}

	if !ctrl.CanSubmit() {
		v := validator.NewDraftValidator(a.cfg.Log)
		draft := ctrl.Draft()
		if verr := v.Validate(&draft, ctrl.Catalog()); verr != nil {
			return verr
		}
		return fmt.Errorf("booking request is not submittable")
	}

	if err := ctrl.Submit(c.Context); err != nil {
		return err
	}

	switch ctrl.State() {
	case controller.StateAccepted:
		return printJSON(ctrl.Ack())
	case controller.StateRejected:
		return ctrl.Err()
	default:
		return fmt.Errorf("unexpected submission state %s", ctrl.State())
	}
}

func parseClock(s string) (hour, minute int, err error) {
	if _, err = fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return hour, minute, nil
}

func (a *app) ticketsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tickets",
		Usage: "maintenance tickets",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status"},
					&cli.StringFlag{Name: "classroom"},
					&cli.StringFlag{Name: "priority"},
					&cli.IntFlag{Name: "limit", Value: 50},
				},
				Action: func(c *cli.Context) error {
					list, err := a.api.Maintenance.ListTickets(c.Context, model.TicketFilter{
						Status:      c.String("status"),
						ClassroomID: c.String("classroom"),
						Priority:    c.String("priority"),
						Limit:       c.Int("limit"),
					})
					if err != nil {
						return err
					}
					return printJSON(list)
				},
			},
			{
				Name:  "create",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "classroom", Required: true},
					&cli.StringFlag{Name: "type", Required: true},
					&cli.StringFlag{Name: "priority", Value: "MEDIUM"},
					&cli.StringFlag{Name: "description", Required: true},
				},
				Action: func(c *cli.Context) error {
					if !a.sess.IsAuthenticated() {
						return session.ErrNotAuthenticated
					}
					ticket, err := a.api.Maintenance.CreateTicket(c.Context, model.TicketCreate{
						ClassroomID:      c.String("classroom"),
						ReportedByUserID: a.sess.UserID(),
						Type:             c.String("type"),
						Priority:         c.String("priority"),
						Description:      c.String("description"),
					})
					if err != nil {
						return err
					}
					return printJSON(ticket)
				},
			},
		},
	}
}

func (a *app) usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "manage user accounts (admin)",
		Subcommands: []*cli.Command{
			{
				Name: "list",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "skip"},
					&cli.IntFlag{Name: "limit", Value: 50},
				},
				Action: func(c *cli.Context) error {
					users, err := a.api.Users.List(c.Context, c.Int("skip"), c.Int("limit"))
					if err != nil {
						return err
					}
					return printJSON(users)
				},
			},
			{
				Name:      "get",
				ArgsUsage: "<user-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one user id")
					}
					user, err := a.api.Users.Get(c.Context, c.Args().First())
					if apierrors.IsNotFound(err) {
						return fmt.Errorf("user %s not found", c.Args().First())
					}
					if err != nil {
						return err
					}
					return printJSON(user)
				},
			},
			{
				Name: "create",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"CLARESYS_NEW_USER_PASSWORD"}},
					&cli.StringFlag{Name: "role", Value: model.RoleStudent},
				},
				Action: func(c *cli.Context) error {
					user, err := a.api.Users.Create(c.Context, model.UserCreate{
						Email:    c.String("email"),
						Password: c.String("password"),
						Role:     c.String("role"),
					})
					if err != nil {
						return err
					}
					return printJSON(user)
				},
			},
			{
				Name:      "deactivate",
				ArgsUsage: "<user-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one user id")
					}
					inactive := false
					user, err := a.api.Users.Update(c.Context, c.Args().First(), model.UserUpdate{
						IsActive: &inactive,
					})
					if err != nil {
						return err
					}
					return printJSON(user)
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "<user-id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one user id")
					}
					if err := a.api.Users.Delete(c.Context, c.Args().First()); err != nil {
						return err
					}
					fmt.Println("User deleted")
					return nil
				},
			},
		},
	}
}

func (a *app) auditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "query the audit trail",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from"},
			&cli.StringFlag{Name: "to"},
			&cli.StringFlag{Name: "service"},
			&cli.StringFlag{Name: "actor"},
			&cli.StringFlag{Name: "action"},
			&cli.StringFlag{Name: "correlation"},
			&cli.IntFlag{Name: "limit", Value: 50},
		},
		Action: func(c *cli.Context) error {
			list, err := a.api.AuditLogs.List(c.Context, model.AuditLogFilter{
				From:          c.String("from"),
				To:            c.String("to"),
				Service:       c.String("service"),
				ActorUserID:   c.String("actor"),
				Action:        c.String("action"),
				CorrelationID: c.String("correlation"),
				Limit:         c.Int("limit"),
			})
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	}
}

func (a *app) reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "download PDF utilization reports",
		Subcommands: []*cli.Command{
			a.reportSubcommand("classroom", func(c *cli.Context) ([]byte, error) {
				return a.api.Reports.ClassroomReport(c.Context, c.Args().First(), c.String("from"), c.String("to"))
			}),
			a.reportSubcommand("user", func(c *cli.Context) ([]byte, error) {
				return a.api.Reports.UserReport(c.Context, c.Args().First(), c.String("from"), c.String("to"))
			}),
		},
	}
}

func (a *app) reportSubcommand(kind string, fetch func(c *cli.Context) ([]byte, error)) *cli.Command {
	return &cli.Command{
		Name:      kind,
		ArgsUsage: fmt.Sprintf("<%s-id>", kind),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from"},
			&cli.StringFlag{Name: "to"},
			&cli.StringFlag{Name: "out", Usage: "output file (defaults to <id>.pdf)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one %s id", kind)
			}
			pdf, err := fetch(c)
			if err != nil {
				return err
			}
			out := c.String("out")
			if out == "" {
				out = c.Args().First() + ".pdf"
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("Report written to %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}
}
