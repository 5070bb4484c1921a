package blob

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// Uploader is the contract the pipeline writes its output through.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) error
}

// AzureUploader writes blobs into one container of an Azure storage account.
type AzureUploader struct {
	client    *azblob.Client
	container string
}

// NewAzureUploader connects to Azure Blob Storage with a connection string.
func NewAzureUploader(connectionString, container string) (*AzureUploader, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("azure connection string is not configured")
	}
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create azure blob client: %w", err)
	}
	return &AzureUploader{client: client, container: container}, nil
}

// Upload writes data to the named blob, overwriting any previous version.
func (u *AzureUploader) Upload(ctx context.Context, name string, data []byte) error {
	if _, err := u.client.UploadBuffer(ctx, u.container, name, data, nil); err != nil {
		return &WriteError{Op: "upload", Err: fmt.Errorf("blob %s/%s: %w", u.container, name, err)}
	}
	return nil
}
