package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/user"
	"github.com/smartattendance/admin/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword       // mockable
	gooseRunFunc     = database.RunMigrations // mockable
	replFunc         = runREPL                // mockable

	errMemoryStore   = errors.New("migrations need the postgres store")
	errEmptyPassword = errors.New("password is required")
	errPasswordsDiff = errors.New("passwords do not match")
)

type commandLine struct {
	conf       *core.Config
	db         *sql.DB // nil with the memory store
	usrSvc     *user.Service
	translator ut.Translator
	out        io.Writer
}

// rootCommand builds a fresh command tree so flags never leak between runs.
func (cli *commandLine) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Smart Attendance administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(cli.migrateCommand())
	root.AddCommand(cli.addUserCommand())
	root.AddCommand(cli.resetPasswordCommand())
	root.AddCommand(cli.browseCommand())
	return root
}

func (cli *commandLine) run(args []string) error {
	root := cli.rootCommand()
	root.SetArgs(args)
	return cli.describeErr(root.Execute())
}

func (cli *commandLine) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <command> [args]",
		Short: "Run a goose migration command (up, down, status, up-to VERSION, ...)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cli.conf.Database.IsMemory() {
				return errMemoryStore
			}
			return gooseRunFunc(cli.db, args[0], args[1:]...)
		},
	}
}

func (cli *commandLine) addUserCommand() *cobra.Command {
	var name, uname, email string
	var isAdmin bool

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a user; the password is prompted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := cli.promptPassword(true)
			if err != nil {
				return err
			}
			return cli.addUser(cmd.Context(), name, uname, email, pwd, isAdmin)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "the user's full name")
	cmd.Flags().StringVar(&uname, "username", "", "the user's username")
	cmd.Flags().StringVar(&email, "email", "", "the user's email")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "grant every role")
	return cmd
}

func (cli *commandLine) resetPasswordCommand() *cobra.Command {
	var uname string

	cmd := &cobra.Command{
		Use:   "resetpassword",
		Short: "Reset a user's password; the password is prompted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := cli.promptPassword(false)
			if err != nil {
				return err
			}
			return cli.resetPassword(cmd.Context(), uname, pwd)
		},
	}
	cmd.Flags().StringVar(&uname, "username", "", "the user's username or email")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (cli *commandLine) browseCommand() *cobra.Command {
	var pageSize int
	var serverPaging bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse users in an interactive table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBrowser(cmd.Context(), cli.usrSvc, cli.out, cli.conf.Table.PageSize(pageSize), serverPaging)
			if err != nil {
				return err
			}
			return replFunc(b)
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "rows per page (defaults to the configured page size)")
	cmd.Flags().BoolVar(&serverPaging, "server-paging", false, "fetch one page at a time from the store")
	return cmd
}

// promptPassword reads a password from the terminal, twice when confirm is set.
func (cli *commandLine) promptPassword(confirm bool) (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	if len(pwd) == 0 {
		return "", errEmptyPassword
	}
	if !confirm {
		return string(pwd), nil
	}

	fmt.Fprint(cli.out, "Confirm password:")
	again, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	if string(again) != string(pwd) {
		return "", errPasswordsDiff
	}
	return string(pwd), nil
}

func (cli *commandLine) addUser(ctx context.Context, name, uname, email, pwd string, isAdmin bool) error {
	nu := user.NewUser{
		Name:            name,
		Username:        uname,
		Email:           email,
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	if isAdmin {
		nu.Roles = user.AllRoles
	}
	usr, err := cli.usrSvc.Create(ctx, nu)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created user %s (%s)\n", usr.Username, usr.ID)
	return nil
}

func (cli *commandLine) resetPassword(ctx context.Context, uname, pwd string) error {
	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		return err
	}
	if _, err = cli.usrSvc.SetPassword(ctx, usr, pwd); err != nil {
		return errors.Wrap(err, "setting password")
	}
	fmt.Fprintf(cli.out, "password updated for %s\n", uname)
	return nil
}

// describeErr flattens validation errors into one "field: message; ..." error.
func (cli *commandLine) describeErr(err error) error {
	if fields, ok := core.FieldMessages(err, cli.translator); ok {
		return errors.New(core.JoinFields(fields))
	}
	return err
}
