package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"pictoroute/internal/domain"
	"pictoroute/internal/platform/obs"
	"pictoroute/internal/ports"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel = "claude-3-5-sonnet-20241022"
	maxTokens    = 8192
)

// ErrNoAddresses is returned when the model response holds no usable JSON.
var ErrNoAddresses = errors.New("vision: response contains no address JSON")

type ClaudeConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
	Timeout time.Duration
	// MaxRetries bounds SDK retries of rate-limit, overload and 5xx responses.
	MaxRetries int
}

// ClaudeExtractor implements AddressExtractor with the Anthropic Messages API.
// All images of one request are sent in a single message so the model can
// keep the table order across photos.
type ClaudeExtractor struct {
	client anthropic.Client
	model  string
}

func NewClaudeExtractor(cfg ClaudeConfig) (*ClaudeExtractor, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("anthropic api key is empty")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &ClaudeExtractor{
		client: anthropic.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// ExtractAddresses sends the images to the model and parses the addresses it returns.
func (c *ClaudeExtractor) ExtractAddresses(
	ctx context.Context,
	images []ports.Image,
) (_ []domain.Address, err error) {
	defer obs.Time(ctx, "claude.ExtractAddresses")(&err)

	if len(images) == 0 {
		return []domain.Address{}, nil
	}

	blocks := make([]anthropic.ContentBlockParamUnion, 0, 1+len(images))
	blocks = append(blocks, anthropic.NewTextBlock(extractionPrompt))
	for _, img := range images {
		if len(img.Data) == 0 {
			log.Printf("req_id=%s skipping empty image filename=%q", obs.RequestID(ctx), img.Filename)
			continue
		}
		blocks = append(blocks, anthropic.NewImageBlockBase64(
			mediaType(img.Data),
			base64.StdEncoding.EncodeToString(img.Data),
		))
	}
	if len(blocks) == 1 {
		return nil, errors.New("extract addresses: all images are empty")
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(0),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
			anthropic.NewAssistantMessage(anthropic.NewTextBlock(assistantPrefill)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("messages request failed: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return parseAddresses(block.Text)
		}
	}
	return nil, ErrNoAddresses
}

// mediaType sniffs the image format; formats the API does not accept are
// sent as JPEG.
func mediaType(data []byte) string {
	switch ct := http.DetectContentType(data); ct {
	case "image/png", "image/gif", "image/webp", "image/jpeg":
		return ct
	default:
		return "image/jpeg"
	}
}
