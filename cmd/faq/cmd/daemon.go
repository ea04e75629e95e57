package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corey/faq/internal/adapters/socket"
	"github.com/corey/faq/internal/app"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the faq daemon",
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon (foreground)",
	Long: "Serves the knowledge base on the project socket and the HTTP chat widget.\n" +
		"Runs until interrupted or stopped with 'faq daemon stop'.",
	RunE: runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

var daemonReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the knowledge base file in the running daemon",
	RunE:  runDaemonReload,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	daemonCmd.AddCommand(daemonReloadCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	sockPath := socket.SocketPath(root)

	// Check if already running
	client := socket.NewClient(sockPath)
	if client.Ping() {
		fmt.Println("⚡ daemon already running")
		return nil
	}

	cfg, err := app.LoadConfig(root)
	if err != nil {
		return err
	}
	paths := app.NewPaths(root)
	if err := paths.EnsureDirs(); err != nil {
		return err
	}
	log, err := app.NewLogger(cfg.LogLevel, verbose, paths.DaemonLog)
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init: %w", lockAware(root, err))
	}
	if err := a.Start(); err != nil {
		a.Close()
		return err
	}
	if err := os.WriteFile(paths.PIDFile, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		log.Warn("write pid file", zap.Error(err))
	}
	defer paths.CleanEphemeral()

	fmt.Printf("⚡ faq daemon started at %s\n", sockPath)
	fmt.Printf("  Source:  %s (%d entries)\n", a.Source(), a.Matcher().KB().Len())
	if a.WebServer.Addr() != "" {
		fmt.Printf("  Chat:    %s\n", a.WebServer.URL())
	}

	// Wait for a signal or a remote stop
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-a.Server.ShutdownCh():
	}

	fmt.Println("\n⚡ shutting down...")
	return a.Stop()
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(socket.SocketPath(projectRoot()))

	if !client.Ping() {
		fmt.Println("⚡ daemon is not running")
		return nil
	}

	if err := client.Shutdown(); err != nil {
		return err
	}

	fmt.Println("⚡ daemon stopped")
	return nil
}

func runDaemonReload(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(socket.SocketPath(projectRoot()))

	if !client.Ping() {
		fmt.Println("⚡ daemon is not running")
		return nil
	}

	res, err := client.Reload()
	if err != nil {
		return err
	}
	fmt.Printf("⚡ reloaded %d entries from %s │ %dms\n", res.Entries, res.Source, res.ElapsedMs)
	return nil
}
