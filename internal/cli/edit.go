package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formpreview/internal/editor"
	"github.com/goliatone/go-formpreview/pkg/preview"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		output string
		style  string
	)
	cmd := &cobra.Command{
		Use:   "edit <file.md>",
		Short: "Edit markdown in the terminal with a live preview pane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			s := a.settings

			var sink preview.Sink
			if output != "" {
				page := preview.NewPageSink(output, s.Title, s.Delimiters)
				page.MathJaxURL = s.MathJaxURL
				sink = page
			}

			session, err := editor.New(editor.Config{
				Path:          path,
				Initial:       string(data),
				Sink:          sink,
				Delimiters:    s.Delimiters,
				QuietInterval: s.QuietInterval,
				Style:         style,
				Logger:        a.logger,
			})
			if err != nil {
				return err
			}
			return session.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "also keep an HTML page up to date")
	cmd.Flags().StringVar(&style, "style", "dark", "glamour style for the preview pane (dark, light, notty)")
	return cmd
}
