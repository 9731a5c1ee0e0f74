package explain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/llm"
	"github.com/abhisek/valenz/internal/store"
)

func iron(t *testing.T) elements.Element {
	t.Helper()
	fe, ok := elements.Default().Get("Fe")
	require.True(t, ok)
	return fe
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestExplain_NoProvider(t *testing.T) {
	svc := NewService(nil, nil, DefaultConfig(), nil)
	assert.False(t, svc.Available())

	_, err := svc.Explain(context.Background(), Request{Element: iron(t)})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestExplain_GeneratesAndCaches(t *testing.T) {
	mock := llm.NewMockProvider()
	require.NoError(t, mock.AddJSON(map[string]string{
		"explanation": "Iron loses its two 4s electrons, and sometimes one 3d electron.",
		"mnemonic":    "Fe is two-faced: II and III.",
	}))
	s := openStore(t)
	svc := NewService(mock, s.ExplanationRepo(), DefaultConfig(), nil)
	ctx := context.Background()

	got, err := svc.Explain(ctx, Request{Element: iron(t), Chosen: "II"})
	require.NoError(t, err)
	assert.False(t, got.Cached)
	assert.Equal(t, "Fe", got.ElementID)
	assert.Equal(t, "mock", got.Model)
	assert.Contains(t, got.Text, "4s")
	assert.Equal(t, "You chose II, but Fe has valence II, III.", got.Verdict)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, ExplanationSchema, calls[0].Schema)
	assert.Equal(t, systemPrompt, calls[0].System)
	require.Len(t, calls[0].Messages, 1)
	assert.Contains(t, calls[0].Messages[0].Content, "Iron (Fe)")
	assert.Contains(t, calls[0].Messages[0].Content, "II, III")

	// The second request is served from the store, with a fresh verdict.
	again, err := svc.Explain(ctx, Request{Element: iron(t), Chosen: "II, III"})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, got.Text, again.Text)
	assert.Equal(t, got.Mnemonic, again.Mnemonic)
	assert.True(t, strings.HasPrefix(again.Verdict, "Right"))
	assert.Equal(t, 1, mock.CallCount())
}

func TestExplain_WithoutCache(t *testing.T) {
	mock := llm.NewMockProvider()
	for range 2 {
		require.NoError(t, mock.AddJSON(map[string]string{"explanation": "x", "mnemonic": "y"}))
	}
	svc := NewService(mock, nil, DefaultConfig(), nil)

	for range 2 {
		_, err := svc.Explain(context.Background(), Request{Element: iron(t)})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, mock.CallCount())
}

func TestExplain_ProviderError(t *testing.T) {
	boom := errors.New("boom")
	mock := llm.NewMockProvider(llm.MockResponse{Err: boom})
	s := openStore(t)
	svc := NewService(mock, s.ExplanationRepo(), DefaultConfig(), nil)

	_, err := svc.Explain(context.Background(), Request{Element: iron(t)})
	assert.ErrorIs(t, err, boom)

	cached, err := s.ExplanationRepo().Get(context.Background(), "Fe", "mock")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestExplain_RejectsOffSchemaOutput(t *testing.T) {
	mock := llm.NewMockProvider()
	require.NoError(t, mock.AddJSON(map[string]string{"explanation": "missing mnemonic"}))
	svc := NewService(mock, nil, DefaultConfig(), nil)

	_, err := svc.Explain(context.Background(), Request{Element: iron(t)})
	assert.Error(t, err)
}

func TestVerdict(t *testing.T) {
	fe := iron(t)
	assert.Equal(t, "Fe has valence II, III.", verdict(Request{Element: fe}))
	assert.Equal(t, "Right: Fe has valence II, III.", verdict(Request{Element: fe, Chosen: "II, III"}))
}
