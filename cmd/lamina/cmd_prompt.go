package main

import (
	"fmt"

	"lamina/internal/form"
	"lamina/internal/prompt"

	"github.com/spf13/cobra"
)

var (
	promptForm string
	promptKind string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt a form would send",
	Long: `Prints one of the three prompts built from a form, without calling the API.

Kinds:
  generation  Imagen text-to-image prompt
  template    Gemini template restyle prompt (visual fields ignored)
  directive   request for an improvement directive`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().StringVarP(&promptForm, "form", "f", "", "YAML form file (default: built-in example)")
	promptCmd.Flags().StringVarP(&promptKind, "kind", "k", "generation", "generation, template or directive")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	fields, _, err := loadInputs(promptForm, "")
	if err != nil {
		return err
	}

	var text string
	switch promptKind {
	case "generation":
		text = prompt.Generation(fields)
	case "template":
		f := fields
		f.ApplyTemplate(&form.TemplateAsset{})
		text = prompt.TemplateEdit(f)
	case "directive":
		text = prompt.ImprovementDirective(fields)
	default:
		return fmt.Errorf("unknown prompt kind %q (valid: generation, template, directive)", promptKind)
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
