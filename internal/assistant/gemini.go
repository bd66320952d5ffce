// Package assistant wraps the external text-generation capability used
// for product descriptions and the product Q&A helper. Any failure of the
// remote call maps to a fixed user-facing fallback string; nothing here
// retries, caches or propagates hard errors.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fallback strings shown when the remote call cannot be made or fails.
const (
	FallbackNoAPIKey      = "Vui lòng cấu hình API Key để sử dụng tính năng AI."
	FallbackDescribeEmpty = "Không thể tạo mô tả lúc này."
	FallbackDescribeError = "Đã xảy ra lỗi khi tạo mô tả tự động."
	FallbackAskNoAPIKey   = "Vui lòng cấu hình API Key."
	FallbackAskEmpty      = "Tôi không có câu trả lời cho vấn đề này."
	FallbackAskError      = "Xin lỗi, tôi đang gặp sự cố kết nối."
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Generator produces natural-language text for products. Implementations
// never return errors; failures surface as fallback strings.
type Generator interface {
	GenerateDescription(ctx context.Context, productName, features string) string
	AskAboutProduct(ctx context.Context, productName, description, question string) string
}

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGeminiClient creates a client. An empty apiKey disables the remote
// call entirely; every operation then returns its configuration fallback.
func NewGeminiClient(apiKey, model string, logger *zap.Logger) *GeminiClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// GenerateDescription writes a short marketing description for a product
// from its name and a free-text feature summary.
func (c *GeminiClient) GenerateDescription(ctx context.Context, productName, features string) string {
	if c.apiKey == "" {
		return FallbackNoAPIKey
	}

	prompt := fmt.Sprintf(`Bạn là một chuyên gia marketing cho một trang web thương mại điện tử.
Hãy viết một mô tả sản phẩm hấp dẫn, chuyên nghiệp và ngắn gọn (khoảng 100-150 từ) bằng tiếng Việt cho sản phẩm sau:
- Tên sản phẩm: %s
- Đặc điểm chính: %s

Hãy tập trung vào lợi ích khách hàng, sử dụng biểu tượng cảm xúc (emoji) phù hợp để làm cho văn bản sinh động.
Không cần tiêu đề, chỉ cần nội dung mô tả.`, productName, features)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("Description generation failed", zap.Error(err))
		return FallbackDescribeError
	}
	if text == "" {
		return FallbackDescribeEmpty
	}
	return text
}

// AskAboutProduct answers a customer question about a product in the
// voice of a shop assistant.
func (c *GeminiClient) AskAboutProduct(ctx context.Context, productName, description, question string) string {
	if c.apiKey == "" {
		return FallbackAskNoAPIKey
	}

	prompt := fmt.Sprintf(`Khách hàng đang xem sản phẩm: "%s".
Mô tả sản phẩm: "%s".

Khách hàng hỏi: "%s"

Hãy trả lời câu hỏi của khách hàng một cách thân thiện, hữu ích và ngắn gọn như một nhân viên tư vấn bán hàng chuyên nghiệp.`, productName, description, question)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("Product Q&A failed", zap.Error(err))
		return FallbackAskError
	}
	if text == "" {
		return FallbackAskEmpty
	}
	return text
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate performs one generateContent call and returns the first
// candidate's text.
func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}
