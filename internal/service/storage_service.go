package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"tryout_lms_backend/internal/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 对象存储抽象：课程资料、文档、题目配图都经由它落盘
type StorageProvider interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
	URL(objectName string) string
}

type localProvider struct {
	cfg *config.StorageConfig
}

func (p *localProvider) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.cfg.LocalPath, objectName)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *localProvider) Remove(ctx context.Context, objectName string) error {
	return os.Remove(filepath.Join(p.cfg.LocalPath, objectName))
}

func (p *localProvider) URL(objectName string) string {
	return "/uploads/" + objectName
}

type minioProvider struct {
	cfg    *config.StorageConfig
	client *minio.Client
}

func newMinioProvider(cfg *config.StorageConfig) (*minioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &minioProvider{cfg: cfg, client: client}, nil
}

func (p *minioProvider) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.cfg.MinioBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *minioProvider) Remove(ctx context.Context, objectName string) error {
	return p.client.RemoveObject(ctx, p.cfg.MinioBucket, objectName, minio.RemoveObjectOptions{})
}

func (p *minioProvider) URL(objectName string) string {
	return "/" + p.cfg.MinioBucket + "/" + objectName
}

type ossProvider struct {
	cfg    *config.StorageConfig
	client *oss.Client
}

func newOSSProvider(cfg *config.StorageConfig) (*ossProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &ossProvider{cfg: cfg, client: client}, nil
}

func (p *ossProvider) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.client.Bucket(p.cfg.OSSBucket)
	if err != nil {
		return "", err
	}
	if err := bucket.PutObject(objectName, reader); err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *ossProvider) Remove(ctx context.Context, objectName string) error {
	bucket, err := p.client.Bucket(p.cfg.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(objectName)
}

func (p *ossProvider) URL(objectName string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.cfg.OSSBucket, p.cfg.OSSEndpoint, objectName)
}

type StorageService struct {
	Provider StorageProvider
}

// NewStorageService 按配置选择后端，minio/oss 初始化失败时退回本地存储
func NewStorageService(cfg *config.Config, logger *zap.Logger) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case "minio":
		p, err := newMinioProvider(&cfg.Storage)
		if err != nil {
			logger.Warn("minio 初始化失败，退回本地存储", zap.Error(err))
		} else {
			provider = p
		}
	case "oss":
		p, err := newOSSProvider(&cfg.Storage)
		if err != nil {
			logger.Warn("oss 初始化失败，退回本地存储", zap.Error(err))
		} else {
			provider = p
		}
	}
	if provider == nil {
		provider = &localProvider{cfg: &cfg.Storage}
	}
	return &StorageService{Provider: provider}
}

// Upload 把 multipart 文件写入存储后端，返回可访问地址
func (s *StorageService) Upload(file *multipart.FileHeader, objectName string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return s.Provider.Put(context.Background(), objectName, src, file.Size, file.Header.Get("Content-Type"))
}

func (s *StorageService) Delete(objectName string) error {
	return s.Provider.Remove(context.Background(), objectName)
}

func (s *StorageService) URL(objectName string) string {
	return s.Provider.URL(objectName)
}
