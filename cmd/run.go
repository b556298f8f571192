package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/bloomquiz/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Client:   d.client,
		Sessions: d.store.SessionRepo(),
		Attempts: d.store.AttemptRepo(),
		Log:      d.log,
	})
}
