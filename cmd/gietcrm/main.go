// Command gietcrm is a terminal front end for the GietCRM data layer:
// it signs in against the hosted backend and drives the client, visit
// and reminder operations a field representative uses day to day.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	crm "github.com/carlosyadil/giettenerife-crm"
)

var debug bool

const opTimeout = 15 * time.Second

// credentials are taken from the environment; the CLI is stateless and
// signs in per invocation.
type credentials struct {
	Email    string `envconfig:"EMAIL"`
	Password string `envconfig:"PASSWORD"`
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gietcrm",
		Short: "GietCRM for managing workshop clients, visits and reminders",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("GIETCRM_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newListClientsCmd())
	rootCmd.AddCommand(newGetClientCmd())
	rootCmd.AddCommand(newAddClientCmd())
	rootCmd.AddCommand(newUpdateClientCmd())
	rootCmd.AddCommand(newDeleteClientCmd())
	rootCmd.AddCommand(newLogVisitCmd())
	rootCmd.AddCommand(newListVisitsCmd())
	rootCmd.AddCommand(newDeleteVisitCmd())
	rootCmd.AddCommand(newAddReminderCmd())
	rootCmd.AddCommand(newAgendaCmd())
	rootCmd.AddCommand(newToggleReminderCmd())
	rootCmd.AddCommand(newDeleteReminderCmd())

	return rootCmd
}

// setup builds the SDK from the environment and signs in. The missing-
// configuration state gates everything: no functional command runs
// without the two connection parameters.
func setup(ctx context.Context) (*crm.Store, *crm.Session, crm.User, error) {
	_ = godotenv.Load()

	backend, err := crm.NewBackendFromEnv()
	if err != nil {
		return nil, nil, crm.User{}, err
	}
	if !backend.Configured() {
		fmt.Fprintln(os.Stderr, "GietCRM is not configured. Set the backend connection variables:")
		fmt.Fprintln(os.Stderr, "  GIETCRM_SUPABASE_URL=...")
		fmt.Fprintln(os.Stderr, "  GIETCRM_SUPABASE_ANON_KEY=...")
		return nil, nil, crm.User{}, crm.ErrNotConfigured
	}

	var creds credentials
	if err := envconfig.Process("GIETCRM", &creds); err != nil {
		return nil, nil, crm.User{}, err
	}

	session := crm.NewSession(backend)
	var actor crm.User
	if creds.Email != "" {
		actor, err = session.SignIn(ctx, creds.Email, creds.Password)
		if err != nil {
			return nil, nil, crm.User{}, err
		}
		log.Debug().Str("user", actor.Email).Msg("signed in")
	}
	return crm.NewStore(backend), session, actor, nil
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify the configured credentials against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			_, session, _, err := setup(ctx)
			if err != nil {
				return err
			}
			u, ok := session.CurrentUser()
			if !ok {
				return fmt.Errorf("no credentials in environment; set GIETCRM_EMAIL and GIETCRM_PASSWORD")
			}
			fmt.Printf("Signed in as %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session token on the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			_, session, _, err := setup(ctx)
			if err != nil {
				return err
			}
			if err := session.SignOut(ctx); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Resolve the signed-in identity from the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			_, session, _, err := setup(ctx)
			if err != nil {
				return err
			}
			u, err := session.Verify(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize clients, visits and reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opTimeout)
			defer cancel()
			store, _, _, err := setup(ctx)
			if err != nil {
				return err
			}

			// The three fetches are independent; completions may land
			// in any order.
			var clients []crm.Client
			var visits []crm.Visit
			var reminders []crm.Reminder
			done := make(chan struct{}, 3)
			go func() { clients = store.ListClients(ctx); done <- struct{}{} }()
			go func() { visits = store.ListVisits(ctx); done <- struct{}{} }()
			go func() { reminders = store.ListReminders(ctx); done <- struct{}{} }()
			for i := 0; i < 3; i++ {
				<-done
			}

			pending := 0
			for _, r := range reminders {
				if !r.Completed {
					pending++
				}
			}
			fmt.Printf("Clients:   %d\n", len(clients))
			fmt.Printf("Visits:    %d\n", len(visits))
			fmt.Printf("Reminders: %d (%d pending)\n", len(reminders), pending)
			return nil
		},
	}
}

// parseDate accepts the date forms the entry screens produce.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD)", s)
}
