package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"lamina/cmd/lamina/studio"
	"lamina/internal/gallery"
	"lamina/internal/workflow"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	deleteYes    bool
	exportResize bool
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Manage saved láminas",
}

var galleryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved láminas, normal and AI-improved, newest first",
	Args:  cobra.NoArgs,
	RunE:  runGalleryList,
}

var galleryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved lámina",
	Args:  cobra.ExactArgs(1),
	RunE:  runGalleryDelete,
}

var galleryExportCmd = &cobra.Command{
	Use:   "export <id> <path>",
	Short: "Write a saved lámina to a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runGalleryExport,
}

var galleryPublishCmd = &cobra.Command{
	Use:   "publish [id...]",
	Short: "Upload saved láminas to the configured bucket (all when no id is given)",
	RunE:  runGalleryPublish,
}

func init() {
	galleryDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
	galleryExportCmd.Flags().BoolVar(&exportResize, "resize", false, "Fit to the 1080x1440 canvas")

	galleryCmd.AddCommand(galleryListCmd)
	galleryCmd.AddCommand(galleryDeleteCmd)
	galleryCmd.AddCommand(galleryExportCmd)
	galleryCmd.AddCommand(galleryPublishCmd)
}

func runGalleryList(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	coll := a.store.Load(cmd.Context())
	out := cmd.OutOrStdout()
	if len(coll) == 0 {
		fmt.Fprintln(out, "No saved láminas.")
		return nil
	}

	normal, improved := coll.Partition()
	for _, part := range []struct {
		title  string
		images gallery.Collection
	}{
		{studio.NormalSectionTitle, normal},
		{studio.ImprovedSectionTitle, improved},
	} {
		fmt.Fprintf(out, "%s (%d)\n", part.title, len(part.images))
		if len(part.images) == 0 {
			continue
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "SAVED", "SIZE")
		for _, img := range part.images {
			t.Row(img.ID, img.Time().Format(time.DateTime), fmt.Sprintf("%d", len(img.ImageBase64)*3/4))
		}
		fmt.Fprintln(out, t.String())
	}
	return nil
}

func runGalleryDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	id := args[0]
	orch := workflow.New(nil, a.store)
	orch.Load(cmd.Context())
	if _, ok := orch.Saved().Find(id); !ok {
		return fmt.Errorf("no saved lámina with id %s", id)
	}

	if !deleteYes && !confirm(cmd, studio.DeleteConfirmation) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	if _, err := orch.Delete(cmd.Context(), id); err != nil {
		return err
	}
	logger.Info("Deleted lámina", zap.String("id", id))
	fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", id)
	return nil
}

// confirm asks question on stdout and reads a y/n answer from stdin.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes" || answer == "s" || answer == "si" || answer == "sí"
}

func runGalleryExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	img, ok := a.store.Load(cmd.Context()).Find(args[0])
	if !ok {
		return fmt.Errorf("no saved lámina with id %s", args[0])
	}
	data, err := img.Bytes()
	if err != nil {
		return err
	}
	if err := gallery.Export(data, args[1], gallery.ExportOptions{Resize: exportResize}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported: %s -> %s\n", img.ID, args[1])
	return nil
}

func runGalleryPublish(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	pub, err := a.newPublisher()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout())
	defer cancel()

	coll := a.store.Load(ctx)
	targets := coll
	if len(args) > 0 {
		targets = nil
		for _, id := range args {
			img, ok := coll.Find(id)
			if !ok {
				return fmt.Errorf("no saved lámina with id %s", id)
			}
			targets = append(targets, img)
		}
	}
	if len(targets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to publish.")
		return nil
	}

	if err := pub.EnsureBucket(ctx); err != nil {
		return err
	}
	for _, img := range targets {
		res, err := pub.Publish(ctx, img)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "published: %s -> %s/%s (%d bytes)\n", res.ID, res.Bucket, res.Key, res.Size)
	}
	return nil
}
