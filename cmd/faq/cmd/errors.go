package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/corey/faq/internal/adapters/bbolt"
	"github.com/corey/faq/internal/adapters/socket"
)

// lockHint explains who holds the snapshot store and what to do about it.
// The daemon owns the store while it runs, so commands that touch stored
// snapshots (import, export --name, snapshots, wipe) must go around it.
func lockHint(root string) string {
	sockPath := socket.SocketPath(root)

	if socket.NewClient(sockPath).Ping() {
		return "the running daemon holds the knowledge base snapshots\n" +
			"  → 'faq ask', 'faq kb list' and 'faq kb export <file>' work through it\n" +
			"  → to change snapshots:  faq daemon stop, retry, then faq daemon start"
	}

	if _, err := os.Stat(sockPath); err == nil {
		return fmt.Sprintf("knowledge base snapshots are locked by a daemon that no longer answers\n"+
			"  → find it:         ps aux | grep 'faq daemon'\n"+
			"  → kill it:         kill <PID>\n"+
			"  → remove socket:   rm %s", sockPath)
	}

	return "knowledge base snapshots are locked by another faq process\n" +
		"  → wait for it to finish, or find it with:  ps aux | grep faq"
}

// lockAware turns a locked snapshot store into guidance for the user.
// Other errors pass through unchanged.
func lockAware(root string, err error) error {
	if errors.Is(err, bbolt.ErrLocked) {
		return fmt.Errorf("%w\n%s", err, lockHint(root))
	}
	return err
}
