package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureStorage implements Storage on an Azure Blob Storage container.
type AzureStorage struct {
	client    *azblob.Client
	container string
}

// NewAzureStorage builds a client from an account connection string
// (DefaultEndpointsProtocol=...;AccountName=...;AccountKey=...). No network
// call is made until the first operation.
func NewAzureStorage(connString, container string, timeout time.Duration) (*AzureStorage, error) {
	client, err := azblob.NewClientFromConnectionString(connString, &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Transport: newHTTPClient(timeout),
			Retry:     policy.RetryOptions{TryTimeout: timeout},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create azure blob client: %w", err)
	}
	return &AzureStorage{client: client, container: container}, nil
}

func (s *AzureStorage) Container() string { return s.container }

// EnsureContainer issues a create and treats ContainerAlreadyExists as success,
// so concurrent cold starts cannot fail each other.
func (s *AzureStorage) EnsureContainer(ctx context.Context) error {
	_, err := s.client.CreateContainer(ctx, s.container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return fmt.Errorf("create container %q: %w", s.container, err)
	}
	return nil
}

// Upload writes reader as a block blob. Block blob uploads always replace
// the existing blob.
func (s *AzureStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	opts := &azblob.UploadStreamOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &contentType}
	}
	if _, err := s.client.UploadStream(ctx, s.container, key, reader, opts); err != nil {
		return fmt.Errorf("upload blob %q: %w", key, err)
	}
	return nil
}

func (s *AzureStorage) List(ctx context.Context) ([]Object, error) {
	var out []Object
	pager := s.client.NewListBlobsFlatPager(s.container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blobs in %q: %w", s.container, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item == nil || item.Name == nil {
				continue
			}
			obj := Object{Key: *item.Name}
			if item.Properties != nil && item.Properties.ContentLength != nil {
				obj.Size = *item.Properties.ContentLength
			}
			out = append(out, obj)
		}
	}
	return out, nil
}
