package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSStore keeps artifacts in a Cloud Storage bucket under a prefix
type GCSStore struct {
	client     *gcs.Client
	bucketName string
	prefix     string
}

// NewGCSStore creates a Cloud Storage backed store using default credentials
func NewGCSStore(ctx context.Context, bucketName, prefix string) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &GCSStore{
		client:     client,
		bucketName: bucketName,
		prefix:     ObjectPrefix(prefix),
	}, nil
}

// ObjectPrefix normalises a prefix to end with a single slash; empty stays empty
func ObjectPrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

func (s *GCSStore) Publish(ctx context.Context, artifact Artifact) (string, error) {
	objectName := s.prefix + artifact.Name
	writer := s.client.Bucket(s.bucketName).Object(objectName).NewWriter(ctx)
	writer.ContentType = artifact.ContentType

	if _, err := writer.Write(artifact.Data); err != nil {
		writer.Close()
		return "", fmt.Errorf("writing object data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing object writer: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucketName, objectName), nil
}

func (s *GCSStore) Read(ctx context.Context, name string) ([]byte, error) {
	reader, err := s.client.Bucket(s.bucketName).Object(s.prefix + name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("opening object reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading object data: %w", err)
	}
	return data, nil
}

// List returns the names of stored artifacts, without the prefix
func (s *GCSStore) List(ctx context.Context) ([]string, error) {
	it := s.client.Bucket(s.bucketName).Objects(ctx, &gcs.Query{Prefix: s.prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		names = append(names, strings.TrimPrefix(attrs.Name, s.prefix))
	}
	return names, nil
}

// Close closes the Cloud Storage client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
