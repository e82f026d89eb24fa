package cmd

import (
	"github.com/abhisek/voltscope/internal/app"
	"github.com/spf13/cobra"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	n, err := openNarration(cfg)
	if err != nil {
		return err
	}
	defer n.Close()

	return app.Run(app.Options{
		Service:  newService(cfg),
		Narrator: n.client,
		Gate:     n.gate,
		Model:    n.llm.Model(),
		LogFile:  cfg.LogFile,
	})
}
