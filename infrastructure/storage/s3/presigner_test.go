package s3

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient() *s3.Client {
	return s3.NewFromConfig(aws.Config{
		Region: "us-east-1",
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "AKIDEXAMPLE", SecretAccessKey: "secret"}, nil
		}),
	})
}

func TestPresigner_Put(t *testing.T) {
	p := NewPresigner(testClient(), "rollout-media", zap.NewNop())

	raw, err := p.PresignPut(context.Background(), "uploads/user-a/abc_take.wav", "audio/wav", 900*time.Second)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Contains(t, u.Host+u.Path, "rollout-media")
	assert.Contains(t, u.Path, "uploads/user-a/abc_take.wav")
	assert.Equal(t, "900", q.Get("X-Amz-Expires"))
	assert.Contains(t, q.Get("X-Amz-SignedHeaders"), "content-type")
}

type stubPresignAPI struct {
	putHeaders http.Header
}

func (s *stubPresignAPI) PresignPutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://example.test/" + aws.ToString(in.Key), Method: http.MethodPut, SignedHeader: s.putHeaders}, nil
}

func (s *stubPresignAPI) PresignGetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://example.test/" + aws.ToString(in.Key), Method: http.MethodGet}, nil
}

func TestPresigner_PutRequiresSignedContentType(t *testing.T) {
	api := &stubPresignAPI{putHeaders: http.Header{"Host": []string{"example.test"}}}
	p := NewPresignerWithAPI(api, "rollout-media", zap.NewNop())

	_, err := p.PresignPut(context.Background(), "k", "audio/wav", time.Minute)
	assert.ErrorIs(t, err, errContentTypeUnsigned)

	api.putHeaders.Set("Content-Type", "audio/wav")
	raw, err := p.PresignPut(context.Background(), "k", "audio/wav", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/k", raw)
}

func TestPresigner_GetNeedsNoObject(t *testing.T) {
	p := NewPresigner(testClient(), "rollout-media", zap.NewNop())

	raw, err := p.PresignGet(context.Background(), "uploads/missing.wav", 900*time.Second)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestPresigner_NoBucket(t *testing.T) {
	p := NewPresigner(testClient(), "", zap.NewNop())
	_, err := p.PresignGet(context.Background(), "k", time.Minute)
	assert.Error(t, err)
}
