package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formpreview/pkg/formspec"
	"github.com/goliatone/go-formpreview/pkg/model"
	"github.com/goliatone/go-formpreview/pkg/validation"
)

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check values against the login field rules",
	}
	cmd.AddCommand(newPredicateCmd(model.FieldKindUsername, "3-20 letters, digits, underscore or hyphen"))
	cmd.AddCommand(newPredicateCmd(model.FieldKindPassword, "6-25 characters, no whitespace, a letter and a digit"))
	cmd.AddCommand(newValidateFormCmd(a))
	return cmd
}

func newPredicateCmd(kind model.FieldKind, rule string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind) + " <value>",
		Short: "Check a " + string(kind) + " (" + rule + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := validation.CheckField(model.Field{Name: string(kind), Kind: kind}, args[0])
			out := cmd.OutOrStdout()
			if result.Valid {
				fmt.Fprintln(out, "valid")
				return nil
			}
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "invalid: %s (%s)\n", issue.Message, issue.Code)
			}
			return ErrInvalid
		},
	}
}

func newValidateFormCmd(a *app) *cobra.Command {
	var classes string
	cmd := &cobra.Command{
		Use:   "form <id> [name=value...]",
		Short: "Run the submit gate of a form against the given values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := formspec.Load(a.settings.FormsDir)
			if err != nil {
				return err
			}
			form, ok := store.Form(args[0])
			if !ok {
				return fmt.Errorf("unknown form %q (known: %s)", args[0], strings.Join(store.IDs(), ", "))
			}

			values := make(map[string]string, len(args)-1)
			for _, pair := range args[1:] {
				name, value, found := strings.Cut(pair, "=")
				if !found {
					return fmt.Errorf("expected name=value, got %q", pair)
				}
				if _, known := form.Field(name); !known {
					return fmt.Errorf("%w: %q", validation.ErrUnknownField, name)
				}
				values[name] = value
			}

			set := validation.DefaultClasses
			if classes == "bootstrap" {
				set = validation.BootstrapClasses
			}
			v := validation.New(form, validation.WithClasses(set))
			decision := v.Submit(values)

			out := cmd.OutOrStdout()
			for _, field := range form.Fields {
				fmt.Fprintf(out, "%-16s %-8s %s\n", field.Name, v.State(field.Name), set.For(v.State(field.Name)))
			}
			fmt.Fprintf(out, "error indicator: %s\n", decision.ErrorClass)
			if decision.Allowed {
				fmt.Fprintln(out, "submit: allowed")
				return nil
			}
			fmt.Fprintln(out, "submit: blocked")
			for _, issue := range decision.Issues {
				fmt.Fprintf(out, "  %s: %s\n", issue.Field, issue.Message)
			}
			return ErrInvalid
		},
	}
	cmd.Flags().StringVar(&classes, "classes", "default", "class names to report: default or bootstrap")
	return cmd
}
