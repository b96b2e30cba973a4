package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConnectionString(t *testing.T) {
	cs, err := ParseConnectionString("DefaultEndpointsProtocol=https;AccountName=bills;AccountKey=abc==;EndpointSuffix=core.windows.net;")
	require.NoError(t, err)

	assert.Equal(t, "https", cs.Get("defaultendpointsprotocol"))
	assert.Equal(t, "bills", cs.Get("AccountName"))
	assert.Equal(t, "abc==", cs.Get("AccountKey"), "values keep embedded '='")
	assert.Empty(t, cs.Get("Provider"))
	assert.Equal(t, "DefaultEndpointsProtocol=https;AccountName=bills;AccountKey=abc==;EndpointSuffix=core.windows.net", cs.String())
}

func TestParseConnectionString_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"segment without equals", "Provider=minio;garbage"},
		{"empty key", "=value"},
		{"only separators", " ; ;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConnectionString(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestConnectionString_Without(t *testing.T) {
	cs, err := ParseConnectionString("Provider=azure;AccountName=a;AccountKey=k")
	require.NoError(t, err)

	assert.Equal(t, "AccountName=a;AccountKey=k", cs.Without("provider").String())
	assert.Equal(t, "azure", cs.Get("Provider"), "Without must not mutate the receiver")
}

func TestOpen_EmptyIsUnconfigured(t *testing.T) {
	store, err := Open(context.Background(), "  ", "uploaded-bills", time.Second)

	require.ErrorIs(t, err, ErrNotConfigured)
	require.NotNil(t, store)
	assert.Equal(t, "uploaded-bills", store.Container())
	assert.ErrorIs(t, store.EnsureContainer(context.Background()), ErrNotConfigured)
	assert.ErrorIs(t, store.Upload(context.Background(), "k", nil, 0, ""), ErrNotConfigured)
	_, err = store.List(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpen_Providers(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, "Provider=memory", "bills", time.Second)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, store)

	store, err = Open(ctx, "Provider=minio;Endpoint=localhost:9000;AccessKey=a;SecretKey=b;UseSSL=false", "bills", time.Second)
	require.NoError(t, err)
	assert.IsType(t, &MinioStorage{}, store)
	assert.Equal(t, "bills", store.Container())

	store, err = Open(ctx, "DefaultEndpointsProtocol=https;AccountName=bills;AccountKey=c2VjcmV0;EndpointSuffix=core.windows.net", "bills", time.Second)
	require.NoError(t, err)
	assert.IsType(t, &AzureStorage{}, store)

	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	store, err = Open(ctx, "Provider=s3;Region=eu-central-1;AccessKey=a;SecretKey=b", "bills", time.Second)
	require.NoError(t, err)
	assert.IsType(t, &S3Storage{}, store)
	assert.Equal(t, "bills", store.Container())

	_, err = Open(ctx, "Provider=ftp;Host=x", "bills", time.Second)
	assert.Error(t, err)

	_, err = Open(ctx, "Provider=minio;AccessKey=a", "bills", time.Second)
	assert.Error(t, err, "minio requires an endpoint")
}

func TestOpen_MalformedIsNotNotConfigured(t *testing.T) {
	_, err := Open(context.Background(), "Provider=minio;oops", "bills", time.Second)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotConfigured))
}
