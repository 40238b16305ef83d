package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	getOut *ssm.GetParameterOutput
	getErr error
	lastIn *ssm.GetParameterInput
}

func (f *fakeAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.lastIn = in
	return f.getOut, f.getErr
}

func strPtr(s string) *string { return &s }

func secretOutput(name, value string) *ssm.GetParameterOutput {
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name:  strPtr(name),
		Value: strPtr(value),
		Type:  types.ParameterTypeSecureString,
	}}
}

func TestGetParameter_FetchesDecryptedSecret(t *testing.T) {
	api := &fakeAPI{getOut: secretOutput("/academy/test/wc-consumer-key", "ck_live_abc")}
	client, err := New(api)
	require.NoError(t, err)

	v, err := client.GetParameter(context.Background(), "/academy/test/wc-consumer-key")
	require.NoError(t, err)
	require.Equal(t, "ck_live_abc", v)

	require.NotNil(t, api.lastIn)
	require.Equal(t, "/academy/test/wc-consumer-key", *api.lastIn.Name)
	require.NotNil(t, api.lastIn.WithDecryption)
	require.True(t, *api.lastIn.WithDecryption)
}

func TestGetParameter_TrimsName(t *testing.T) {
	api := &fakeAPI{getOut: secretOutput("/academy/test/crm-api-key", "pit-token")}
	client, err := New(api)
	require.NoError(t, err)

	_, err = client.GetParameter(context.Background(), "  /academy/test/crm-api-key  ")
	require.NoError(t, err)
	require.Equal(t, "/academy/test/crm-api-key", *api.lastIn.Name)
}

func TestGetParameter_MissingValue(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: strPtr("p")}}}
	client, err := New(api)
	require.NoError(t, err)

	_, err = client.GetParameter(context.Background(), "p")
	require.ErrorContains(t, err, "missing value")
}

func TestGetParameter_ApiError(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("AccessDeniedException")}
	client, err := New(api)
	require.NoError(t, err)

	_, err = client.GetParameter(context.Background(), "/academy/test/gemini-api-key")
	require.ErrorContains(t, err, "AccessDeniedException")
	require.ErrorContains(t, err, "/academy/test/gemini-api-key")
}

func TestGetParameter_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).GetParameter(context.Background(), "p")
	require.ErrorContains(t, err, "not initialized")
}

func TestGetParameter_EmptyName(t *testing.T) {
	client, err := New(&fakeAPI{})
	require.NoError(t, err)

	_, err = client.GetParameter(context.Background(), "   ")
	require.ErrorContains(t, err, "required")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.ErrorContains(t, err, "must not be nil")
}
