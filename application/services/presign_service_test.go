package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"rollouthq/application/ports/mocks"
	pkgerrors "rollouthq/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"":                  "file",
		"take 1.wav":        "take_1.wav",
		"beat-v2_final.mp3": "beat-v2_final.mp3",
		"vocals/../x?.wav":  "vocals_.._x_.wav",
		"café.wav":          "caf_.wav",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeName(in), in)
	}
}

func TestUploadKey(t *testing.T) {
	assert.Equal(t, "custom/key.wav", UploadKey("user-a", "custom/key.wav", "abc", "x.wav"))
	assert.Equal(t, "uploads/user-a/abc_take_1.wav", UploadKey("user-a", "", "abc", "take 1.wav"))
	assert.Equal(t, UploadKey("user-a", "", "abc", "x.wav"), UploadKey("user-a", "", "abc", "x.wav"))

	first := UploadKey("user-a", "", "", "x.wav")
	second := UploadKey("user-a", "", "", "x.wav")
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "uploads/user-a/"))
	assert.True(t, strings.HasSuffix(first, "_x.wav"))
}

func TestPresign_PutDefaults(t *testing.T) {
	ctx := context.Background()
	presigner := new(mocks.Presigner)
	presigner.On("PresignPut", ctx, "uploads/user-a/h1_file", "application/octet-stream", DefaultPresignExpiry).
		Return("https://signed/put", nil)

	svc := NewPresignService(presigner, 0, zap.NewNop())
	res, err := svc.Presign(ctx, "user-a", PresignRequest{Hash: "h1"})

	require.NoError(t, err)
	assert.Equal(t, "https://signed/put", res.URL)
	assert.Equal(t, "uploads/user-a/h1_file", res.Key)
	presigner.AssertExpectations(t)
}

func TestPresign_GetRequiresKey(t *testing.T) {
	svc := NewPresignService(new(mocks.Presigner), 0, zap.NewNop())
	_, err := svc.Presign(context.Background(), "user-a", PresignRequest{Action: "GET"})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, pkgerrors.StatusOf(err))
	assert.Equal(t, MsgKeyRequiredForGet, pkgerrors.GetAppError(err).Message)
}

func TestPresign_GetAnyKey(t *testing.T) {
	ctx := context.Background()
	presigner := new(mocks.Presigner)
	presigner.On("PresignGet", ctx, "uploads/someone-else/nothing.wav", DefaultPresignExpiry).Return("https://signed/get", nil)

	svc := NewPresignService(presigner, 0, zap.NewNop())
	res, err := svc.Presign(ctx, "user-a", PresignRequest{Action: "Get", Key: "uploads/someone-else/nothing.wav"})

	require.NoError(t, err)
	assert.Equal(t, "https://signed/get", res.URL)
}

func TestPresign_Failures(t *testing.T) {
	ctx := context.Background()
	presigner := new(mocks.Presigner)
	presigner.On("PresignPut", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("no creds"))
	svc := NewPresignService(presigner, 0, zap.NewNop())

	_, err := svc.Presign(ctx, "user-a", PresignRequest{})
	assert.Equal(t, http.StatusInternalServerError, pkgerrors.StatusOf(err))

	_, err = svc.Presign(ctx, "user-a", PresignRequest{Action: "upload"})
	assert.Equal(t, http.StatusInternalServerError, pkgerrors.StatusOf(err))
	presigner.AssertNumberOfCalls(t, "PresignPut", 2)

	_, err = svc.Presign(ctx, "", PresignRequest{})
	assert.Equal(t, http.StatusUnauthorized, pkgerrors.StatusOf(err))
}
