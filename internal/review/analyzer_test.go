package review

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/juparave/baseline/internal/config"
	"github.com/juparave/baseline/internal/domain"
	"github.com/juparave/baseline/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	resp     *llm.Response
	err      error
	requests []llm.Request
}

func (f *fakeClient) Complete(_ context.Context, req llm.Request) (*llm.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newTestAnalyzer(client llm.Client) *Analyzer {
	cfg := config.LLMConfig{Model: "gpt-5-mini", ReasoningEffort: "high"}
	return NewAnalyzer(client, cfg, log.New(io.Discard, "", 0), true)
}

func TestAnalyzeFile_Success(t *testing.T) {
	client := &fakeClient{resp: &llm.Response{
		Content:      `{"findings":[{"title":"Reentrancy","severity":"high","confidence":0.8}]}`,
		InputTokens:  500,
		OutputTokens: 40,
	}}

	out := newTestAnalyzer(client).AnalyzeFile(context.Background(), "/src/Vault.sol", "contract Vault {}")

	assert.False(t, out.Failed())
	require.Len(t, out.Findings, 1)
	assert.Equal(t, "Vault.sol", out.Findings[0].File)
	assert.Equal(t, "gpt-5-mini", out.Findings[0].ReportedByModel)
	assert.Equal(t, domain.SeverityHigh, out.Findings[0].Severity)
	assert.Equal(t, 500, out.InputTokens)
	assert.Equal(t, 40, out.OutputTokens)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "gpt-5-mini", req.Model)
	assert.Equal(t, "high", req.ReasoningEffort)
	require.Len(t, req.Messages, 2)
	assert.Contains(t, req.Messages[1].Content, "contract Vault {}")
}

func TestAnalyzeFile_RequestErrorIsAbsorbed(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}

	out := newTestAnalyzer(client).AnalyzeFile(context.Background(), "Vault.sol", "contract Vault {}")

	assert.True(t, out.Failed())
	assert.Empty(t, out.Findings)
	assert.Zero(t, out.InputTokens)
	assert.Zero(t, out.OutputTokens)
	assert.Len(t, client.requests, 1)
}

func TestAnalyzeFile_UnparseableResponse(t *testing.T) {
	client := &fakeClient{resp: &llm.Response{Content: "Looks safe to me!", InputTokens: 10, OutputTokens: 5}}

	out := newTestAnalyzer(client).AnalyzeFile(context.Background(), "Vault.sol", "contract Vault {}")

	assert.True(t, out.Failed())
	assert.Empty(t, out.Findings)
	assert.Zero(t, out.InputTokens)
	assert.Zero(t, out.OutputTokens)
}

func TestAnalyzeFile_EmptyResponseIsClean(t *testing.T) {
	client := &fakeClient{resp: &llm.Response{Content: ""}}

	out := newTestAnalyzer(client).AnalyzeFile(context.Background(), "Vault.sol", "contract Vault {}")

	assert.False(t, out.Failed())
	assert.Empty(t, out.Findings)
}
