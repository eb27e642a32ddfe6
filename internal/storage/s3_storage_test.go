package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	key string
	err error
}

func (f *fakePresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*PresignedRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.key = *params.Key
	return &PresignedRequest{URL: "https://upload.test/" + f.key}, nil
}

func TestS3Storage_PresignImageUpload(t *testing.T) {
	fake := &fakePresigner{}
	s := &S3Storage{presigner: fake, bucket: "bucket", region: "eu-central-1"}

	resp, err := s.PresignImageUpload(context.Background(), "Phone.PNG", "image/png", "products")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Key, "products/"))
	assert.True(t, strings.HasSuffix(resp.Key, ".png"))
	assert.Equal(t, fake.key, resp.Key)
	assert.Equal(t, "https://bucket.s3.eu-central-1.amazonaws.com/"+resp.Key, resp.FileURL)

	s.baseURL = "https://cdn.test"
	resp, err = s.PresignImageUpload(context.Background(), "a.jpg", "image/jpeg", "posts")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/"+resp.Key, resp.FileURL)
}

func TestS3Storage_Rejects(t *testing.T) {
	s := &S3Storage{presigner: &fakePresigner{}, bucket: "bucket"}

	_, err := s.PresignImageUpload(context.Background(), "a.exe", "application/octet-stream", "products")
	assert.ErrorIs(t, err, ErrInvalidUpload)

	_, err = s.PresignImageUpload(context.Background(), "a.png", "image/png", "../etc")
	assert.ErrorIs(t, err, ErrInvalidUpload)

	s.presigner = &fakePresigner{err: errors.New("no credentials")}
	_, err = s.PresignImageUpload(context.Background(), "a.png", "image/png", "posts")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidUpload)
}
