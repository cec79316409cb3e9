package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formpreview/pkg/orchestrator"
	"github.com/goliatone/go-formpreview/pkg/render"
	"github.com/goliatone/go-formpreview/pkg/renderers/prompt"
)

func newFormCmd(a *app) *cobra.Command {
	var (
		format    string
		csrf      string
		csrfField string
		output    string
		endpoint  string
		errsFile  string
		list      bool
	)
	cmd := &cobra.Command{
		Use:     "form [id]",
		Aliases: []string{"login"},
		Short:   "Fill a form interactively and print the submission payload",
		Long: `Asks for every field of the form (login by default). Answers are checked
as they are typed, range answers are clamped, and the payload is only printed
once the submit gate allows it.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			orch := orchestrator.New(orchestrator.WithFormsDir(a.settings.FormsDir))
			return orch.Suggest(toComplete, 20), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id := "login"
			if len(args) == 1 {
				id = args[0]
			}

			opts := []prompt.Option{
				prompt.WithOutputFormat(prompt.OutputFormat(format)),
				prompt.WithLogger(a.logger),
			}
			if a.driver != nil {
				opts = append(opts, prompt.WithPromptDriver(a.driver))
			}
			reg := render.NewRegistry()
			reg.MustRegister(prompt.New(opts...))

			orchOpts := []orchestrator.Option{
				orchestrator.WithFormsDir(a.settings.FormsDir),
				orchestrator.WithRegistry(reg),
				orchestrator.WithLogger(a.logger),
			}
			if endpoint != "" {
				orchOpts = append(orchOpts, orchestrator.WithEndpointOverride(id, orchestrator.EndpointOverride{Endpoint: endpoint}))
			}
			orch := orchestrator.New(orchOpts...)

			if list {
				for _, name := range orch.Forms() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			var hidden []render.HiddenField
			if csrf != "" {
				hidden = append(hidden, render.CSRFToken(csrfField, csrf))
			}

			serverErrs, err := readServerErrors(errsFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			payload, err := orch.Generate(ctx, orchestrator.Request{
				FormID:        id,
				RenderOptions: render.RenderOptions{Hidden: hidden, Errors: serverErrs},
			})
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, payload, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "submission written to %s\n", output)
				return nil
			}
			out := string(payload)
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "payload format: json, form or pretty")
	cmd.Flags().StringVar(&csrf, "csrf", "", "CSRF token merged into the payload")
	cmd.Flags().StringVar(&csrfField, "csrf-field", "_csrf", "name of the CSRF field")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the payload to a file")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "override the form's submit endpoint")
	cmd.Flags().StringVar(&errsFile, "errors", "", "JSON file with server errors to show before asking")
	cmd.Flags().BoolVar(&list, "list", false, "list the available forms")
	return cmd
}

// readServerErrors loads a rejected-submission payload: an object mapping
// field paths to messages.
func readServerErrors(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read errors file: %w", err)
	}
	var out map[string][]string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse errors file %s: %w", path, err)
	}
	return out, nil
}
