package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/faq/internal/adapters/bbolt"
	"github.com/corey/faq/internal/adapters/kbfile"
	"github.com/corey/faq/internal/app"
	"github.com/corey/faq/internal/domain/kb"
	"github.com/corey/faq/internal/domain/matcher"
)

// Each command binds its own name flag; cobra writes a flag's default into
// the bound variable at definition time.
var (
	importName string
	exportName string
	wipeName   string
	kbJSON     bool
	wipeForce  bool
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect and manage knowledge bases",
}

var kbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entries of the active knowledge base",
	Args:  cobra.NoArgs,
	RunE:  runKBList,
}

var kbValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a YAML or JSON knowledge base file",
	Long:  "Parses and validates a knowledge base file, then reports authoring issues. Exits non-zero only when the file is invalid.",
	Args:  cobra.ExactArgs(1),
	RunE:  runKBValidate,
}

var kbImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a knowledge base file as a named snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runKBImport,
}

var kbExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a knowledge base to a YAML or JSON file",
	Long:  "Exports the named snapshot, or the active knowledge base when --name is not given.",
	Args:  cobra.ExactArgs(1),
	RunE:  runKBExport,
}

var kbSnapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored knowledge base snapshots",
	Args:  cobra.NoArgs,
	RunE:  runKBSnapshots,
}

var kbWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete a stored snapshot",
	Long:  "Deletes a stored snapshot. The daemon must be stopped. The built-in knowledge base is served when no file or snapshot remains.",
	Args:  cobra.NoArgs,
	RunE:  runKBWipe,
}

func init() {
	kbListCmd.Flags().BoolVar(&kbJSON, "json", false, "Print entries as JSON")
	kbValidateCmd.Flags().BoolVar(&kbJSON, "json", false, "Print issues as JSON")
	kbImportCmd.Flags().StringVar(&importName, "name", app.DefaultSnapshot, "Snapshot name")
	kbExportCmd.Flags().StringVar(&exportName, "name", "", "Snapshot name (default: active knowledge base)")
	kbWipeCmd.Flags().StringVar(&wipeName, "name", app.DefaultSnapshot, "Snapshot name")
	kbWipeCmd.Flags().BoolVar(&wipeForce, "force", false, "Skip confirmation prompt")

	kbCmd.AddCommand(kbListCmd)
	kbCmd.AddCommand(kbValidateCmd)
	kbCmd.AddCommand(kbImportCmd)
	kbCmd.AddCommand(kbExportCmd)
	kbCmd.AddCommand(kbSnapshotsCmd)
	kbCmd.AddCommand(kbWipeCmd)
}

// openStore opens the project's snapshot store directly. Fails with lock
// guidance while the daemon holds it.
func openStore(root string) (*bbolt.Store, error) {
	cfg, err := app.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	if err := app.NewPaths(root).EnsureDirs(); err != nil {
		return nil, err
	}
	store, err := bbolt.NewStore(cfg.DBPath)
	if err != nil {
		return nil, lockAware(root, err)
	}
	return store, nil
}

func runKBList(cmd *cobra.Command, args []string) error {
	b, err := openBackend(projectRoot())
	if err != nil {
		return err
	}
	defer b.close()

	res, err := b.entries()
	if err != nil {
		return err
	}
	if kbJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Print(formatEntries(res))
	return nil
}

func runKBValidate(cmd *cobra.Command, args []string) error {
	k, err := kbfile.Load(args[0])
	if err != nil {
		return err
	}
	issues := matcher.Lint(k)
	if kbJSON {
		return json.NewEncoder(os.Stdout).Encode(struct {
			Entries int             `json:"entries"`
			Issues  []matcher.Issue `json:"issues"`
		}{k.Len(), issues})
	}

	fmt.Printf("%s │ %d entries │ %d suggestions\n",
		paint(colorGreen, "✓ "+args[0]), k.Len(), len(k.Suggestions()))
	for _, i := range issues {
		fmt.Printf("  %s %s\n", paint(colorYellow, "⚠"), i)
	}
	return nil
}

func runKBImport(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	k, err := kbfile.Load(path)
	if err != nil {
		return err
	}

	store, err := openStore(projectRoot())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveKB(importName, path, k); err != nil {
		return err
	}
	fmt.Printf("⚡ imported %d entries as %s\n", k.Len(), paint(colorCyan, importName))
	return nil
}

func runKBExport(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	var k *kb.KB

	if exportName != "" {
		store, err := openStore(root)
		if err != nil {
			return err
		}
		defer store.Close()
		if k, err = store.LoadKB(exportName); err != nil {
			return err
		}
		if k == nil {
			return fmt.Errorf("no snapshot named %q", exportName)
		}
	} else {
		b, err := openBackend(root)
		if err != nil {
			return err
		}
		defer b.close()
		m, err := b.compiled()
		if err != nil {
			return err
		}
		k = m.KB()
	}

	if err := kbfile.Write(args[0], k); err != nil {
		return err
	}
	fmt.Printf("⚡ exported %d entries to %s\n", k.Len(), args[0])
	return nil
}

func runKBSnapshots(cmd *cobra.Command, args []string) error {
	store, err := openStore(projectRoot())
	if err != nil {
		return err
	}
	defer store.Close()

	snaps, err := store.ListKBs()
	if err != nil {
		return err
	}
	fmt.Print(formatSnapshots(snaps))
	return nil
}

func runKBWipe(cmd *cobra.Command, args []string) error {
	if !wipeForce {
		fmt.Printf("⚠ This will delete snapshot %q. Continue? [y/N] ", wipeName)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	store, err := openStore(projectRoot())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteKB(wipeName); err != nil {
		return err
	}
	fmt.Printf("⚡ snapshot %s wiped\n", wipeName)
	return nil
}
