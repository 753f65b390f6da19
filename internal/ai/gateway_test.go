package ai

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/n3wth/skills-backend/internal/platform/apperr"
	"github.com/n3wth/skills-backend/internal/usage"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var apiErr *apperr.Error
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Status
}

func TestExecuteRejectsEmptyPrompt(t *testing.T) {
	g := NewGateway(&fakeProvider{}, nil, 3, "gemini-2.5-flash")

	_, err := g.Execute(context.Background(), ExecuteRequest{Prompt: "  ", Fingerprint: "fp-1"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestExecuteRejectsEmptyFingerprint(t *testing.T) {
	g := NewGateway(&fakeProvider{}, nil, 3, "gemini-2.5-flash")

	_, err := g.Execute(context.Background(), ExecuteRequest{Prompt: "do a thing", Fingerprint: ""})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestExecuteFreeTierSuccess(t *testing.T) {
	newUsageDB(t)
	provider := &fakeProvider{textResult: "done"}
	g := NewGateway(provider, nil, 3, "gemini-2.5-flash")
	ctx := context.Background()

	result, err := g.Execute(ctx, ExecuteRequest{Prompt: "do a thing", Fingerprint: "fp-1"})
	require.NoError(t, err)
	assert.Equal(t, "done", result.Result)
	assert.Equal(t, "gemini-2.5-flash", result.Model)
	require.NotNil(t, result.Remaining)
	assert.Equal(t, 2, *result.Remaining)

	// 一次成功调用恰好记一次消耗
	count, err := usage.Count(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestExecuteQuotaExceeded(t *testing.T) {
	newUsageDB(t)
	provider := &fakeProvider{textResult: "done"}
	g := NewGateway(provider, nil, 3, "gemini-2.5-flash")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, usage.Add(ctx, "fp-1"))
	}

	_, err := g.Execute(ctx, ExecuteRequest{Prompt: "do a thing", Fingerprint: "fp-1"})
	var apiErr *apperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.Status)
	assert.Equal(t, 3, apiErr.Extra["limit"])
	assert.Equal(t, 3, apiErr.Extra["used"])

	// 超额请求不触达上游，也不再记消耗
	assert.Equal(t, 0, provider.textCalls)
	count, err := usage.Count(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestExecuteRemainingReachesZero(t *testing.T) {
	newUsageDB(t)
	provider := &fakeProvider{textResult: "done"}
	g := NewGateway(provider, nil, 3, "gemini-2.5-flash")
	ctx := context.Background()

	var lastRemaining int
	for i := 0; i < 3; i++ {
		result, err := g.Execute(ctx, ExecuteRequest{Prompt: "go", Fingerprint: "fp-1"})
		require.NoError(t, err)
		require.NotNil(t, result.Remaining)
		lastRemaining = *result.Remaining
	}
	assert.Equal(t, 0, lastRemaining)

	_, err := g.Execute(ctx, ExecuteRequest{Prompt: "go", Fingerprint: "fp-1"})
	assert.Equal(t, http.StatusPaymentRequired, statusOf(t, err))
}

func TestExecuteUserKeySkipsQuota(t *testing.T) {
	newUsageDB(t)
	ctx := context.Background()

	// 免费额度已经用尽
	for i := 0; i < 3; i++ {
		require.NoError(t, usage.Add(ctx, "fp-1"))
	}

	userProvider := &fakeProvider{textResult: "done with user key"}
	factory := func(_ context.Context, apiKey string) (Provider, error) {
		assert.Equal(t, "user-key-123", apiKey)
		return userProvider, nil
	}
	g := NewGateway(&fakeProvider{}, factory, 3, "gemini-2.5-flash")

	result, err := g.Execute(ctx, ExecuteRequest{
		Prompt:      "do a thing",
		Fingerprint: "fp-1",
		UserAPIKey:  "user-key-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "done with user key", result.Result)
	assert.Nil(t, result.Remaining)
	assert.Equal(t, 1, userProvider.textCalls)

	// 自带密钥的调用不消耗免费额度
	count, err := usage.Count(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestExecuteMapsUpstreamRejectionToInvalidCredential(t *testing.T) {
	newUsageDB(t)

	for _, code := range []int{400, 403} {
		provider := &fakeProvider{textErr: &genai.APIError{Code: code, Message: "denied"}}
		g := NewGateway(provider, nil, 3, "gemini-2.5-flash")

		_, err := g.Execute(context.Background(), ExecuteRequest{Prompt: "go", Fingerprint: "fp-x"})
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err), "code %d", code)
	}
}

func TestExecuteMapsOtherUpstreamFailuresTo502(t *testing.T) {
	newUsageDB(t)

	provider := &fakeProvider{textErr: &genai.APIError{Code: 500, Message: "internal"}}
	g := NewGateway(provider, nil, 3, "gemini-2.5-flash")
	_, err := g.Execute(context.Background(), ExecuteRequest{Prompt: "go", Fingerprint: "fp-x"})
	var apiErr *apperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "internal", apiErr.Extra["upstream"])

	// 非APIError的网络失败同样按502处理
	provider = &fakeProvider{textErr: errors.New("connection refused")}
	g = NewGateway(provider, nil, 3, "gemini-2.5-flash")
	_, err = g.Execute(context.Background(), ExecuteRequest{Prompt: "go", Fingerprint: "fp-x"})
	assert.Equal(t, http.StatusBadGateway, statusOf(t, err))
}

func TestExecuteFailedCallDoesNotRecordUsage(t *testing.T) {
	newUsageDB(t)
	provider := &fakeProvider{textErr: &genai.APIError{Code: 500, Message: "internal"}}
	g := NewGateway(provider, nil, 3, "gemini-2.5-flash")
	ctx := context.Background()

	_, err := g.Execute(ctx, ExecuteRequest{Prompt: "go", Fingerprint: "fp-1"})
	require.Error(t, err)

	count, err := usage.Count(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestExecuteUnconfiguredService(t *testing.T) {
	newUsageDB(t)
	g := NewGateway(nil, nil, 3, "gemini-2.5-flash")

	_, err := g.Execute(context.Background(), ExecuteRequest{Prompt: "go", Fingerprint: "fp-1"})
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))
}
