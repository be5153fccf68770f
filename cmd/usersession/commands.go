package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/target/mmk-usersession/config"
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	"github.com/target/mmk-usersession/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer
}

var errNoSession = errors.New("no user session in context")

func commands() map[string]command {
	return map[string]command{
		"whoami": {
			name:        "whoami",
			description: "Load the current user and print the profile with role flags",
			run:         runWhoAmI,
		},
		"refresh": {
			name:        "refresh",
			description: "Load the current user, re-fetch the given fields and print the result",
			run:         runRefresh,
		},
		"track": {
			name:        "track",
			description: "Record <path> [fullPath] as the current user's last page",
			run:         runTrack,
		},
		"roles": {
			name:        "roles",
			description: "Print the configured role id table",
			run:         runRoles,
		},
	}
}

// summary is the JSON shape printed by whoami and refresh.
type summary struct {
	Kind       string            `json:"kind"`
	FullName   string            `json:"full_name,omitempty"`
	IsAdmin    bool              `json:"is_admin"`
	IsVendor   bool              `json:"is_vendor"`
	IsManager  bool              `json:"is_manager"`
	IsDirector bool              `json:"is_director"`
	User       domainuser.Record `json:"user"`
}

func summarize(sess *service.UserSession) summary {
	u := sess.CurrentUser()
	s := summary{
		IsAdmin:    sess.IsAdmin(),
		IsVendor:   sess.IsVendor(),
		IsManager:  sess.IsManager(),
		IsDirector: sess.IsDirector(),
		User:       domainuser.ToRecord(u),
	}
	switch u.(type) {
	case *domainuser.AuthenticatedUser:
		s.Kind = "authenticated"
	case *domainuser.ShareUser:
		s.Kind = "share"
	default:
		s.Kind = "none"
	}
	s.FullName, _ = sess.FullName()
	return s
}

func loadSession(ctx *commandContext) (*service.UserSession, error) {
	sess, ok := service.SessionFromContext(ctx.Ctx)
	if !ok {
		return nil, errNoSession
	}
	sess.Load(ctx.Ctx)
	if err := sess.Err(); err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}
	return sess, nil
}

func runWhoAmI(ctx *commandContext, _ []string) error {
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}
	return printJSON(ctx.Out, summarize(sess))
}

func runRefresh(ctx *commandContext, args []string) error {
	if len(args) == 0 {
		return errors.New("refresh requires at least one field")
	}
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}
	sess.RefreshFields(ctx.Ctx, args)
	return printJSON(ctx.Out, summarize(sess))
}

func runTrack(ctx *commandContext, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errors.New("usage: track <path> [fullPath]")
	}
	dest := domainuser.Destination{Path: args[0], FullPath: args[0]}
	if len(args) == 2 {
		dest.FullPath = args[1]
	}

	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}
	if err := sess.TrackCurrentPage(ctx.Ctx, dest); err != nil {
		return err
	}

	var lastPage string
	if u, ok := sess.CurrentUser().(*domainuser.AuthenticatedUser); ok {
		lastPage = u.Record.LastPage()
	}
	return printJSON(ctx.Out, map[string]string{"last_page": lastPage})
}

func runRoles(ctx *commandContext, _ []string) error {
	ids := ctx.Config.Roles.RoleIDs()
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{string(domainuser.RoleKindVendor), ids.Vendor},
		{string(domainuser.RoleKindManager), ids.Manager},
		{string(domainuser.RoleKindDirector), ids.Director},
	}
	if _, err := fmt.Fprintln(tw, "ROLE\tID"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
