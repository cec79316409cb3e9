package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formpreview/internal/watch"
	"github.com/goliatone/go-formpreview/pkg/preview"
	"github.com/goliatone/go-formpreview/pkg/preview/markdown"
	"github.com/goliatone/go-formpreview/pkg/typeset"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		output   string
		fragment bool
		follow   bool
	)
	cmd := &cobra.Command{
		Use:   "preview <input.md>",
		Short: "Render markdown with math to a sanitized HTML page",
		Long: `Renders the input once. With --watch the file is followed and the page is
re-rendered after it has been left unchanged for preview.quiet_interval.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			data, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			s := a.settings
			if output == "" {
				output = s.Output
			}

			// Fragments go to stdout from OnRender, once per render pass.
			out := cmd.OutOrStdout()
			var sink preview.Sink = &preview.MemorySink{}
			if !fragment {
				page := preview.NewPageSink(output, s.Title, s.Delimiters)
				page.MathJaxURL = s.MathJaxURL
				sink = page
			}

			annotator := typeset.NewAnnotator(s.Delimiters)
			renderer, err := preview.New(sink,
				preview.WithConverter(markdown.New(
					markdown.WithDelimiters(s.Delimiters.Open, s.Delimiters.Close),
					markdown.WithRawHTML(s.RawHTML),
				)),
				preview.WithTypesetter(annotator),
				preview.WithQuietInterval(s.QuietInterval),
				preview.WithLogger(a.logger),
				preview.OnRender(func(res preview.Result) {
					if res.Err != nil {
						return
					}
					if fragment {
						fmt.Fprintln(out, res.HTML)
					}
					a.logger.Info("preview rendered",
						zap.Uint64("generation", res.Generation),
						zap.Duration("took", res.Duration),
						zap.Int("math", len(annotator.Annotations())),
					)
				}),
			)
			if err != nil {
				return err
			}
			defer renderer.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := renderer.Start(ctx, string(data)); err != nil {
				return err
			}
			if !fragment {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d math expressions)\n", output, len(annotator.Annotations()))
			}
			if !follow {
				return nil
			}

			w, err := watch.New(input, renderer, watch.WithLogger(a.logger))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s, ctrl+c to stop\n", input)
			if err := w.Run(ctx); err != nil {
				return err
			}
			return renderer.Flush(context.Background())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "page to write (default preview.output)")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "print the sanitized HTML fragment instead of writing a page")
	cmd.Flags().BoolVarP(&follow, "watch", "w", false, "re-render when the input changes")
	return cmd
}
