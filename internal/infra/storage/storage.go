// Package storage keeps merchant media in an object store.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	// URL returns a time limited link to read the object.
	URL(ctx context.Context, key string) (string, error)
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// ======================================================
// S3
// ======================================================

type S3Store struct {
	client *s3.Client
	presig *s3.PresignClient
	bucket string
	ttl    time.Duration
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket name is required")
	}

	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	client := s3.New(opts)

	return &S3Store{
		client: client,
		presig: s3.NewPresignClient(client),
		bucket: cfg.Bucket,
		ttl:    15 * time.Minute,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %q: %w", key, err)
	}
	return nil
}

func (s *S3Store) URL(ctx context.Context, key string) (string, error) {
	req, err := s.presig.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("s3 presign %q: %w", key, err)
	}
	return req.URL, nil
}

// ======================================================
// Memory
// ======================================================

type Object struct {
	ContentType string
	Body        []byte
}

type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]Object
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string]Object{}}
}

func (s *MemoryStore) Put(_ context.Context, key, contentType string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = Object{ContentType: contentType, Body: append([]byte(nil), body...)}
	return nil
}

func (s *MemoryStore) URL(_ context.Context, key string) (string, error) {
	return "memory://" + key, nil
}

func (s *MemoryStore) Get(key string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.objects[key]
	return o, ok
}

var (
	_ ObjectStore = (*S3Store)(nil)
	_ ObjectStore = (*MemoryStore)(nil)
)
