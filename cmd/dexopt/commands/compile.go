package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <package-file>",
		Short: "Compile a package file ahead of time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := c.app.Compile(cmd.Context(), configPath(cmd), args[0])
			if err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout()).outcome(outcome)
			if err := outcome.Err(); err != nil {
				return &OutcomeError{err: err}
			}
			return nil
		},
	}
}

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <package-file>",
		Short: "Show where the artifact of a package file lives and whether it is usable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := c.app.Status(cmd.Context(), configPath(cmd), args[0])
			if err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).artifact(status)
			return nil
		},
	}
}

func (c *CLI) newCapabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Show the platform provider and the capabilities it serves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Capabilities(cmd.Context(), configPath(cmd))
			if err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).capabilities(report)
			return nil
		},
	}
}
