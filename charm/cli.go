// ABOUTME: CLI commands for Charm KV sync operations
// ABOUTME: Simplified sync with SSH key auth - no login/logout needed

package charm

import (
	"flag"
	"fmt"
)

// SyncLinkCommand links this device to a Charm account.
// Uses SSH key auth - charm handles this automatically via SSH keys.
func SyncLinkCommand(c *Client, args []string) error {
	fs := flag.NewFlagSet("sync link", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.IsLocal() {
		return fmt.Errorf("the local driver does not sync; use --driver charm")
	}

	fmt.Printf("Linking to Charm Cloud (%s)...\n\n", c.Config().Host)
	fmt.Println("Charm uses SSH key authentication.")

	if err := c.Sync(); err != nil {
		return fmt.Errorf("link failed: %w", err)
	}

	id, err := c.ID()
	if err != nil {
		fmt.Println("✓ Device linked (ID unavailable)")
	} else {
		fmt.Printf("✓ Linked to account: %s\n", id)
	}
	fmt.Printf("✓ Auto-sync: %v\n", c.Config().AutoSync)

	return nil
}

// SyncStatusCommand shows current sync configuration and status.
func SyncStatusCommand(c *Client, args []string) error {
	fs := flag.NewFlagSet("sync status", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := c.Config()
	fmt.Println("Charm Sync Status")
	fmt.Println("─────────────────")
	if c.IsLocal() {
		fmt.Println("Server:    none (local driver)")
	} else {
		fmt.Printf("Server:    %s\n", cfg.Host)
	}
	fmt.Printf("Auto-sync: %v\n", cfg.AutoSync)

	if keys, err := c.Keys(); err == nil {
		fmt.Printf("Keys:      %d\n", len(keys))
	}
	if c.IsLocal() {
		return nil
	}

	id, err := c.ID()
	if err != nil {
		fmt.Println("\nStatus: Not connected")
		fmt.Println("\nCharm uses SSH keys for authentication - no login required!")
		return nil //nolint:nilerr // not connected is a valid state
	}
	fmt.Println("\nStatus: Connected to Charm Cloud")
	fmt.Printf("ID:        %s\n", id)

	return nil
}

// SyncUnlinkCommand explains how to disconnect this device. Charm has no
// direct unlink API.
func SyncUnlinkCommand(args []string) error {
	fs := flag.NewFlagSet("sync unlink", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("To unlink your device from Charm Cloud:")
	fmt.Println()
	fmt.Println("  1. Remove this device's SSH key from your Charm account")
	fmt.Println("  2. Delete local charm data: rm -rf ~/.local/share/charm")
	fmt.Println()
	fmt.Println("Local propkit data will be preserved in ~/.local/share/propkit")

	return nil
}

// SyncWipeCommand completely resets the KV store.
// WARNING: This deletes every proposal section!
func SyncWipeCommand(c *Client, args []string) error {
	fs := flag.NewFlagSet("sync wipe", flag.ContinueOnError)
	confirm := fs.Bool("confirm", false, "Confirm data wipe")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*confirm {
		fmt.Println("WARNING: This will delete ALL local proposal data!")
		fmt.Println()
		fmt.Println("To confirm, run:")
		fmt.Println("  propkit sync wipe --confirm")
		return nil
	}

	if err := c.Reset(); err != nil {
		return fmt.Errorf("failed to reset KV store: %w", err)
	}

	fmt.Println("✓ All data wiped")
	return nil
}

// SyncNowCommand performs an immediate sync.
func SyncNowCommand(c *Client, args []string) error {
	fs := flag.NewFlagSet("sync now", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "Show verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		fmt.Println("Syncing with server...")
	}

	if err := c.Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if *verbose {
		fmt.Println("✓ Sync complete")
	} else {
		fmt.Println("✓ Synced")
	}

	return nil
}
