package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerniceZTT/crm_local/models"
	"github.com/BerniceZTT/crm_local/utils"
)

// AI分析的兜底文案，协作方的任何失败都转换为其中之一，永不抛错
const (
	analysisNoKeyMessage   = "API Key not configured."
	analysisEmptyMessage   = "Could not generate analysis."
	analysisFailureMessage = "Failed to generate analysis. Please check your API configuration."
	defaultGeminiModel     = "gemini-2.5-flash"
	defaultGeminiBaseURL   = "https://generativelanguage.googleapis.com"
	defaultAnalysisTimeout = 45 * time.Second
)

// OpportunityAnalyzer 商机AI分析协作方
//
// 返回值永远是可展示的文本，失败以兜底文案的形式返回，不作为error传播。
type OpportunityAnalyzer interface {
	Analyze(ctx context.Context, opp models.Opportunity) string
}

// GeminiAnalyzer 基于Gemini generateContent接口的分析实现
type GeminiAnalyzer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiAnalyzer 创建Gemini分析器，model 为空时使用默认模型
func NewGeminiAnalyzer(apiKey, model string) *GeminiAnalyzer {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiAnalyzer{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: defaultAnalysisTimeout},
	}
}

// BuildAnalysisPrompt 构造分析提示词
//
// 嵌入客户名、当前阶段（中文标签）、销售负责人和按时间倒序的拜访记录。
func BuildAnalysisPrompt(opp models.Opportunity) string {
	visitsText := "No visit records yet."
	if len(opp.VisitRecords) > 0 {
		lines := make([]string, 0, len(opp.VisitRecords))
		for _, v := range opp.VisitRecords {
			lines = append(lines, fmt.Sprintf("[%s] %s", v.Date, v.Content))
		}
		visitsText = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`You are an expert Sales Manager AI. Analyze the following sales opportunity.

Customer: %s
Current Status: %s (Note: Statuses range from Initial Contact '初步接触' to Won '赢单'/Lost '输单')
Salesperson: %s

Visit History:
%s

Please provide a concise analysis in Markdown format including:
1. **Summary**: Brief overview of the situation.
2. **Sentiment**: Positive, Neutral, or Negative.
3. **Next Steps**: 3 actionable recommendations for the salesperson.
4. **Win Probability**: An estimated percentage (0-100%%) based on the progress.`,
		opp.CustomerName, opp.Status.Label(), opp.Salesperson, visitsText)
}

// generateContent接口的请求与响应结构，只声明用到的字段
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Analyze 调用Gemini生成商机分析
func (a *GeminiAnalyzer) Analyze(ctx context.Context, opp models.Opportunity) string {
	if a.apiKey == "" {
		return analysisNoKeyMessage
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: BuildAnalysisPrompt(opp)}}},
		},
	})
	if err != nil {
		utils.LogError(err, map[string]interface{}{"opportunityId": opp.ID}, "序列化分析请求失败")
		return analysisFailureMessage
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		utils.LogError(err, map[string]interface{}{"opportunityId": opp.ID}, "构造分析请求失败")
		return analysisFailureMessage
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"opportunityId": opp.ID}, "AI分析调用失败")
		return analysisFailureMessage
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		utils.LogError(fmt.Errorf("gemini返回状态码 %d: %s", resp.StatusCode, raw),
			map[string]interface{}{"opportunityId": opp.ID}, "AI分析调用失败")
		return analysisFailureMessage
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		utils.LogError(err, map[string]interface{}{"opportunityId": opp.ID}, "解析分析响应失败")
		return analysisFailureMessage
	}

	var sb strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return analysisEmptyMessage
	}
	return sb.String()
}
