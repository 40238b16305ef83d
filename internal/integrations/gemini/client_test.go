package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubGetter struct {
	params map[string]string
	err    error
	calls  []string
}

func (s *stubGetter) GetParameter(_ context.Context, name string) (string, error) {
	s.calls = append(s.calls, name)
	if s.err != nil {
		return "", s.err
	}
	return s.params[name], nil
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "/academy/test", Config{})
	require.Error(t, err)

	getter := &stubGetter{params: map[string]string{"/academy/test/gemini-api-key": "key"}}
	_, err = NewClient(context.Background(), getter, "  ", Config{})
	require.Error(t, err)
}

func TestNewClient_KeyFetchError(t *testing.T) {
	getter := &stubGetter{err: errors.New("denied")}

	_, err := NewClient(context.Background(), getter, "/academy/test", Config{})
	require.Error(t, err)
	require.Equal(t, []string{"/academy/test/gemini-api-key"}, getter.calls)
}

func TestNewClient_EmptyKey(t *testing.T) {
	getter := &stubGetter{params: map[string]string{}}

	_, err := NewClient(context.Background(), getter, "/academy/test", Config{})
	require.Error(t, err)
}

func TestNewClient_TrimsPrefix(t *testing.T) {
	getter := &stubGetter{params: map[string]string{"/academy/test/gemini-api-key": "key"}}

	client, err := NewClient(context.Background(), getter, "/academy/test/", Config{})
	require.NoError(t, err)
	require.NoError(t, client.Close())
	require.Equal(t, []string{"/academy/test/gemini-api-key"}, getter.calls)
}
