package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"lamina/internal/gallery"
	"lamina/internal/workflow"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	batchConcurrency int
	batchTemplate    string
	batchImprove     bool
	batchSave        bool
	batchOut         string
	batchResize      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <form.yaml>...",
	Short: "Generate láminas for several form files in parallel",
	Long: `Runs generate for every form file. Each form gets its own workflow, so
one form never waits on another's generation. Results are written as
<form name>.jpg and <form name>-mejorada-ia.jpg under --out.

Saves are applied to the gallery in one write after all forms finish.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 2, "Forms processed at once")
	batchCmd.Flags().StringVarP(&batchTemplate, "template", "t", "", "Template image used for every form")
	batchCmd.Flags().BoolVar(&batchImprove, "improve", false, "Also produce AI-improved versions")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Save results to the gallery")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Output directory (default: output.dir)")
	batchCmd.Flags().BoolVar(&batchResize, "resize", false, "Fit outputs to the 1080x1440 canvas")
}

// batchResult is what one form produced.
type batchResult struct {
	form     string
	normal   []byte
	improved []byte
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	out := batchOut
	if out == "" {
		out = a.cfg.Output.Dir
	}
	resize := batchResize || a.cfg.Output.ResizeCanvas

	results := make([]batchResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(batchConcurrency)

	for i, path := range args {
		g.Go(func() error {
			res, err := runBatchForm(ctx, a, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if err := gallery.Export(res.normal, filepath.Join(out, base+".jpg"), gallery.ExportOptions{Resize: resize}); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if res.improved != nil {
				if err := gallery.Export(res.improved, filepath.Join(out, base+"-mejorada-ia.jpg"), gallery.ExportOptions{Resize: resize}); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "done: %s\n", res.form)
	}

	if batchSave {
		return saveBatch(cmd, a, results)
	}
	return nil
}

// runBatchForm drives one form through a private workflow. Its gallery is
// not persisted; saving happens once in saveBatch.
func runBatchForm(ctx context.Context, a *app, path string) (batchResult, error) {
	fields, asset, err := loadInputs(path, batchTemplate)
	if err != nil {
		return batchResult{}, err
	}

	flowCtx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()

	svc, err := newService(flowCtx, a.cfg)
	if err != nil {
		return batchResult{}, err
	}
	orch := workflow.New(svc, nil)

	logger.Debug("Batch form started", zap.String("form", path))
	if err := orch.RunGenerate(flowCtx, fields, asset); err != nil {
		return batchResult{}, err
	}
	if batchImprove {
		if err := orch.RunImprove(flowCtx, fields); err != nil {
			return batchResult{}, err
		}
	}

	st := orch.State()
	return batchResult{
		form:     path,
		normal:   artifactOrNil(st, gallery.KindNormal),
		improved: artifactOrNil(st, gallery.KindImproved),
	}, nil
}

func saveBatch(cmd *cobra.Command, a *app, results []batchResult) error {
	ctx := cmd.Context()
	coll := a.store.Load(ctx)
	for _, res := range results {
		for _, item := range []struct {
			kind gallery.Kind
			data []byte
		}{
			{gallery.KindNormal, res.normal},
			{gallery.KindImproved, res.improved},
		} {
			if item.data == nil {
				continue
			}
			img := coll.NewImage(item.kind, item.data, time.Now())
			coll = coll.Prepend(img)
			fmt.Fprintf(cmd.OutOrStdout(), "saved: %s (%s, %s)\n", img.ID, item.kind, res.form)
		}
	}
	return a.store.Save(ctx, coll)
}
