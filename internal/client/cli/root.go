package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/imagedrop/internal/client/config"
)

// newAppFn builds the App for a command. Tests replace it.
var newAppFn = func(cmd *cobra.Command) (*App, error) {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	in, out, logw := cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()
	return NewApp(cfg, in, out, logw)
}

// NewRootCommand returns the imagedrop command tree. Running it without a
// subcommand starts the shell.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "imagedrop",
		Short:         "Upload, search and delete images on an imagedrop server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runShell,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE:  runShell,
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Upload every file copied into the drop directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := newAppFn(cmd)
				if err != nil {
					return err
				}
				return app.RunWatch(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "upload FILE...",
			Short: "Upload files and exit",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newAppFn(cmd)
				if err != nil {
					return err
				}
				return app.Upload(cmd.Context(), args)
			},
		},
		&cobra.Command{
			Use:   "search [PHRASE]",
			Short: "Search images and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newAppFn(cmd)
				if err != nil {
					return err
				}
				return app.Search(cmd.Context(), strings.Join(args, " "))
			},
		},
	)
	return root
}

func runShell(cmd *cobra.Command, _ []string) error {
	app, err := newAppFn(cmd)
	if err != nil {
		return err
	}
	return app.RunShell(cmd.Context())
}

// Execute runs the command tree with args against the given streams.
func Execute(ctx context.Context, args []string, in io.Reader, out, errw io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errw)
	return root.ExecuteContext(ctx)
}
