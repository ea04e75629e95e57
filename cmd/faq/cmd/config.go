package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/faq/internal/adapters/socket"
	"github.com/corey/faq/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the resolved configuration, socket path, and daemon status. No daemon required.",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	cfg, err := app.LoadConfig(root)
	if err != nil {
		return err
	}
	paths := app.NewPaths(root)
	sockPath := socket.SocketPath(root)

	client := socket.NewClient(sockPath)
	daemonRunning := client.Ping()
	daemonStatus := paint(colorYellow, "✗ not running")
	if daemonRunning {
		daemonStatus = paint(colorGreen, "✓ running")
	}

	kbFile := cfg.KBFile
	if kbFile == "" {
		kbFile = "(none: stored snapshot or built-in)"
	}

	fmt.Println(paint(colorBold, "⚡ faq config"))
	fmt.Printf("  Root:       %s\n", root)
	fmt.Printf("  Config:     %s\n", paths.Config)
	fmt.Printf("  KB file:    %s\n", kbFile)
	fmt.Printf("  Watch:      %t\n", cfg.Watch)
	fmt.Printf("  DB:         %s\n", cfg.DBPath)
	fmt.Printf("  Snapshot:   %s\n", cfg.Snapshot)
	fmt.Printf("  Log level:  %s\n", cfg.LogLevel)
	fmt.Printf("  Socket:     %s\n", sockPath)
	fmt.Printf("  Daemon:     %s\n", daemonStatus)

	if daemonRunning {
		if addr, err := os.ReadFile(paths.AddrFile); err == nil {
			fmt.Printf("  Chat:       http://%s\n", strings.TrimSpace(string(addr)))
		}
	}
	return nil
}
