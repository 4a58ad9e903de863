package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanixdarker/gqlg/internal/app"
	"github.com/sanixdarker/gqlg/internal/server"
	sshserver "github.com/sanixdarker/gqlg/internal/ssh"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveSSHPort int
	serveNoSSH   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the gqlg HTTP API.

POST a schema to /api/generate to get its documents as JSON. With a
database (--db or GQLG_DB) runs can be saved and browsed at / and under
/api/runs, and an SSH server serves the terminal history browser.

Examples:
  gqlg serve
  gqlg serve --port 8080 --db gqlg.db
  gqlg serve --db gqlg.db --ssh-port 2222

Connect via SSH:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		application, err := app.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		srv := server.New(application)

		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

		var sshSrv *sshserver.Server
		if !serveNoSSH && application.History != nil {
			sshSrv, err = sshserver.New(sshserver.Config{
				Port:    cfg.SSHPort,
				History: application.History,
				Logger:  application.Logger,
			})
			if err != nil {
				application.Logger.Warn("failed to initialize SSH server", "error", err)
			} else {
				go func() {
					if err := sshSrv.ListenAndServe(); err != nil {
						application.Logger.Error("SSH server error", "error", err)
					}
				}()
				fmt.Printf("SSH history browser available at ssh://localhost:%d\n", cfg.SSHPort)
			}
		}

		go func() {
			<-done
			application.Logger.Info("shutting down servers...")

			if sshSrv != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				sshSrv.Shutdown(ctx)
			}
			srv.Shutdown()
		}()

		application.Logger.Info("starting server", "port", cfg.Port, "history", application.History != nil)
		fmt.Printf("gqlg server running at http://localhost:%d\n", cfg.Port)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "HTTP port to listen on")
	serveCmd.Flags().IntVar(&serveSSHPort, "ssh-port", 2222, "SSH port for the history browser")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite database (or set GQLG_DB)")
	serveCmd.Flags().IntVar(&depthLimit, "depthLimit", app.DefaultConfig().DepthLimit, "Default depth limit for /api/generate")
	serveCmd.Flags().BoolVar(&serveNoSSH, "no-ssh", false, "Disable SSH server")

	rootCmd.AddCommand(serveCmd)
}
