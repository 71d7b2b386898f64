// Package imagegen is the only code that talks to the Gemini and Imagen
// models. It exchanges raw image bytes with callers; base64 happens on the
// wire inside the genai SDK.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"lamina/internal/form"
	"lamina/internal/logging"
	"lamina/internal/prompt"
)

// Errors surfaced to the user. Their text is shown as-is.
var (
	ErrGenerationFailed          = errors.New("Image generation failed. No images were returned.")
	ErrEditFailed                = errors.New("Image editing failed. No image was returned.")
	ErrDirectiveGenerationFailed = errors.New("Improvement directive generation failed.")
)

// Default model names.
const (
	DefaultImageModel = "imagen-4.0-generate-001"
	DefaultEditModel  = "gemini-2.5-flash-image"
	DefaultTextModel  = "gemini-2.5-pro"
)

// OutputMIMEType is the encoding requested from text-to-image generation.
const OutputMIMEType = "image/jpeg"

// Image calls slower than this are logged as warnings.
const slowImageCall = 45 * time.Second

// Options configures a Client.
type Options struct {
	APIKey     string
	ImageModel string
	EditModel  string
	TextModel  string

	// BaseURL overrides the API endpoint. Empty means the SDK default.
	BaseURL string
	// HTTPClient overrides the transport. Nil means the SDK default.
	HTTPClient *http.Client
}

// Client wraps a genai client with the three calls lamina needs.
// No call is retried.
type Client struct {
	genai      *genai.Client
	imageModel string
	editModel  string
	textModel  string
}

// New creates a Client. An empty API key is rejected.
func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		genai:      client,
		imageModel: orDefault(opts.ImageModel, DefaultImageModel),
		editModel:  orDefault(opts.EditModel, DefaultEditModel),
		textModel:  orDefault(opts.TextModel, DefaultTextModel),
	}, nil
}

// GenerateFromText renders prompt into exactly one JPEG image.
func (c *Client) GenerateFromText(ctx context.Context, promptText, aspectRatio string) ([]byte, error) {
	log, timer := c.begin("GenerateFromText", c.imageModel)
	defer timer.StopWithThreshold(slowImageCall)

	resp, err := c.genai.Models.GenerateImages(ctx, c.imageModel, promptText, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: OutputMIMEType,
		AspectRatio:    aspectRatio,
	})
	if err != nil {
		log.Error("GenerateImages failed: %v", err)
		return nil, fmt.Errorf("image generation request failed: %w", err)
	}

	if resp != nil {
		for _, img := range resp.GeneratedImages {
			if img != nil && img.Image != nil && len(img.Image.ImageBytes) > 0 {
				log.Info("Generated image (%d bytes)", len(img.Image.ImageBytes))
				return img.Image.ImageBytes, nil
			}
		}
	}

	log.Warn("GenerateImages returned no images")
	return nil, ErrGenerationFailed
}

// EditWithDirective applies directive to image and returns the first
// image the model sends back. Text parts in the response are ignored.
func (c *Client) EditWithDirective(ctx context.Context, image []byte, mimeType, directive string) ([]byte, error) {
	log, timer := c.begin("EditWithDirective", c.editModel)
	defer timer.StopWithThreshold(slowImageCall)

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
		genai.NewPartFromText(prompt.EditInstruction(directive)),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.genai.Models.GenerateContent(ctx, c.editModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
	})
	if err != nil {
		log.Error("GenerateContent failed: %v", err)
		return nil, fmt.Errorf("image edit request failed: %w", err)
	}

	for _, part := range firstCandidateParts(resp) {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			log.Info("Edited image (%d bytes, %s)", len(part.InlineData.Data), part.InlineData.MIMEType)
			return part.InlineData.Data, nil
		}
	}

	log.Warn("GenerateContent returned no inline image")
	return nil, ErrEditFailed
}

// GenerateImprovementDirective asks the text model for one creative
// directive for a lámina with the given content.
func (c *Client) GenerateImprovementDirective(ctx context.Context, fields form.Fields) (string, error) {
	log, timer := c.begin("GenerateImprovementDirective", c.textModel)
	defer timer.StopWithInfo()

	resp, err := c.genai.Models.GenerateContent(ctx, c.textModel, genai.Text(prompt.ImprovementDirective(fields)), nil)
	if err != nil {
		log.Error("GenerateContent failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrDirectiveGenerationFailed, err)
	}

	// Text skips thought parts.
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		log.Warn("GenerateContent returned no text")
		return "", ErrDirectiveGenerationFailed
	}

	logging.APIDebug("Directive: %s", text)
	return text, nil
}

// begin logs the start of op and returns a logger tagged with a fresh
// request id.
func (c *Client) begin(op, model string) (*logging.Logger, *logging.Timer) {
	id := uuid.NewString()
	logging.API("%s started (model=%s request_id=%s)", op, model, id)
	return logging.Get(logging.CategoryAPI).With("request_id", id, "model", model), logging.StartTimer(logging.CategoryAPI, op)
}

func firstCandidateParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return nil
	}
	parts := make([]*genai.Part, 0, len(cand.Content.Parts))
	for _, p := range cand.Content.Parts {
		if p != nil {
			parts = append(parts, p)
		}
	}
	return parts
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
