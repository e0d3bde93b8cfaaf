package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/Dosada05/tourney/repositories"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const rowPrefix = "tournaments/"

type r2RowStore struct {
	client     *s3.Client
	bucketName string
	gzip       bool
}

// NewR2RowStore keeps one object per tournament in bucketName. With
// gzipRows set, objects are compressed and carry a ".gz" suffix.
func NewR2RowStore(client *s3.Client, bucketName string, gzipRows bool) repositories.RowStore {
	return &r2RowStore{client: client, bucketName: bucketName, gzip: gzipRows}
}

func (s *r2RowStore) Get(ctx context.Context, name string) ([]byte, error) {
	key := rowObjectKey(name, s.gzip)
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, repositories.ErrRowNotFound
		}
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if s.gzip {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open compressed object %s: %w", key, err)
		}
		defer gr.Close()
		rdr = gr
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

func (s *r2RowStore) Put(ctx context.Context, name string, value []byte) error {
	key := rowObjectKey(name, s.gzip)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(value),
		ContentType: aws.String("application/json"),
	}

	if s.gzip {
		body, err := gzipBytes(value)
		if err != nil {
			return fmt.Errorf("failed to gzip object %s: %w", key, err)
		}
		input.Body = bytes.NewReader(body)
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// Delete checks for the object first; S3 reports success when deleting a
// missing key.
func (s *r2RowStore) Delete(ctx context.Context, name string) error {
	key := rowObjectKey(name, s.gzip)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return repositories.ErrRowNotFound
		}
		return fmt.Errorf("failed to head object %s: %w", key, err)
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (s *r2RowStore) Keys(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(rowPrefix),
	})

	names := make([]string, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in %s: %w", s.bucketName, err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			if name, ok := rowNameFromKey(*obj.Key, s.gzip); ok {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func rowObjectKey(name string, gz bool) string {
	key := rowPrefix + url.PathEscape(name) + ".json"
	if gz {
		key += ".gz"
	}
	return key
}

// rowNameFromKey reverses rowObjectKey. Objects written with the other gzip
// setting are skipped.
func rowNameFromKey(key string, gz bool) (string, bool) {
	suffix := ".json"
	if gz {
		suffix += ".gz"
	}
	if !strings.HasPrefix(key, rowPrefix) || !strings.HasSuffix(key, suffix) {
		return "", false
	}
	escaped := strings.TrimSuffix(strings.TrimPrefix(key, rowPrefix), suffix)
	if escaped == "" || strings.Contains(escaped, "/") {
		return "", false
	}
	name, err := url.PathUnescape(escaped)
	if err != nil {
		return "", false
	}
	return name, true
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}
