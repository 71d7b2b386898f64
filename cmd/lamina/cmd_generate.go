package main

import (
	"context"
	"fmt"
	"path/filepath"

	"lamina/internal/form"
	"lamina/internal/gallery"
	"lamina/internal/workflow"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	genForm     string
	genTemplate string
	genImprove  bool
	genSave     bool
	genOut      string
	genResize   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a lámina from a form file",
	Long: `Generates one lámina headlessly.

Without --template the form is turned into an Imagen prompt (3:4). With
--template the image is restyled by Gemini using the form text, and the
visual-style fields are ignored. --improve then asks Gemini for a creative
directive and applies it to the result.`,
	Example: `  lamina generate --form post.yaml
  lamina generate --form post.yaml --template base.png --improve --save`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genForm, "form", "f", "", "YAML form file (default: built-in example)")
	generateCmd.Flags().StringVarP(&genTemplate, "template", "t", "", "Template image to restyle")
	generateCmd.Flags().BoolVar(&genImprove, "improve", false, "Also produce an AI-improved version")
	generateCmd.Flags().BoolVar(&genSave, "save", false, "Save results to the gallery")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Output directory (default: output.dir)")
	generateCmd.Flags().BoolVar(&genResize, "resize", false, "Fit downloads to the 1080x1440 canvas")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	fields, asset, err := loadInputs(genForm, genTemplate)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout())
	defer cancel()

	orch, err := a.newOrchestrator(ctx)
	if err != nil {
		return err
	}

	logger.Info("Generating", zap.String("form", genForm), zap.Bool("template", asset != nil))
	if err := orch.RunGenerate(ctx, fields, asset); err != nil {
		return err
	}
	kinds := []gallery.Kind{gallery.KindNormal}

	if genImprove {
		if err := orch.RunImprove(ctx, fields); err != nil {
			return err
		}
		kinds = append(kinds, gallery.KindImproved)
	}

	out := genOut
	if out == "" {
		out = a.cfg.Output.Dir
	}
	resize := genResize || a.cfg.Output.ResizeCanvas

	st := orch.State()
	for _, kind := range kinds {
		art := st.Artifact(kind)
		name := a.cfg.Output.GeneratedAs
		if kind == gallery.KindImproved {
			name = a.cfg.Output.ImprovedAs
		}
		path := filepath.Join(out, name)
		if err := gallery.Export(art.Data, path, gallery.ExportOptions{Resize: resize}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s, %d bytes)\n", kind, path, art.MIMEType, len(art.Data))

		if genSave {
			img, err := orch.Save(ctx, kind)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved: %s\n", img.ID)
		}
	}
	return nil
}

// loadInputs reads the form (defaults when path is empty) and the optional
// template, clearing the visual fields when a template is used.
func loadInputs(formPath, templatePath string) (form.Fields, *form.TemplateAsset, error) {
	fields := form.Defaults()
	if formPath != "" {
		f, err := form.LoadFile(formPath)
		if err != nil {
			return form.Fields{}, nil, err
		}
		fields = f
	}

	var asset *form.TemplateAsset
	if templatePath != "" {
		t, err := form.LoadTemplate(templatePath)
		if err != nil {
			return form.Fields{}, nil, err
		}
		asset = t
		fields.ApplyTemplate(asset)
	}
	return fields, asset, nil
}

// artifactOrNil is a nil-safe accessor for headless reporting.
func artifactOrNil(st workflow.State, kind gallery.Kind) []byte {
	if a := st.Artifact(kind); a != nil {
		return a.Data
	}
	return nil
}
