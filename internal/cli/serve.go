package cli

import (
	"os/signal"
	"syscall"

	"github.com/emilyand-i/AgileWebGroup82/internal/app"
	"github.com/emilyand-i/AgileWebGroup82/internal/middleware"
	"github.com/emilyand-i/AgileWebGroup82/pkg/firebase"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if servePort != "" {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		var verifier middleware.IDTokenVerifier
		fb, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return err
		}
		if fb != nil {
			verifier = fb.AuthClient
		}

		application, err := app.New(ctx, cfg, db, verifier)
		if err != nil {
			return err
		}
		return application.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port, overriding PORT")
}
