// Package storage提供了与对象存储服务（如 MinIO）交互的功能。
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"time"

	"corevitals-go/internal/config"
	"corevitals-go/pkg/log"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient 是一个全局的 MinIO 客户端实例。
var MinioClient *minio.Client

// InitMinIO 初始化 MinIO 客户端并确保指定的存储桶存在。
func InitMinIO(cfg config.MinIOConfig) {
	var err error

	// 1. 初始化 MinIO 客户端
	MinioClient, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Fatal("初始化 MinIO 客户端失败", err)
	}

	log.Info("MinIO 客户端初始化成功")

	// 2. 检查存储桶是否存在，不存在则创建
	ctx := context.Background()
	exists, err := MinioClient.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		log.Fatal("检查 MinIO 存储桶失败", err)
	}
	if !exists {
		log.Infof("存储桶 '%s' 不存在，正在创建...", cfg.BucketName)
		if err := MinioClient.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("创建 MinIO 存储桶失败", err)
		}
		log.Infof("存储桶 '%s' 创建成功", cfg.BucketName)
	}
}

// ObjectClient 是 AudioStore 依赖的 MinIO 方法子集，方便测试替换。
type ObjectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// AudioStore 把合成的音频上传到存储桶，并返回一个有时效的预签名下载地址。
type AudioStore struct {
	client ObjectClient
	bucket string
	expiry time.Duration
}

// NewAudioStore 创建一个基于 MinIO 的音频存储。
func NewAudioStore(client ObjectClient, bucket string, expiry time.Duration) *AudioStore {
	return &AudioStore{client: client, bucket: bucket, expiry: expiry}
}

// Save 上传音频，对象名形如 tts/<uuid>.mp3。
func (s *AudioStore) Save(ctx context.Context, audio []byte, contentType string) (string, error) {
	objectName := "tts/" + uuid.NewString() + extensionFor(contentType)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(audio), int64(len(audio)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Errorw("上传音频到 MinIO 失败", "bucket", s.bucket, "object", objectName, "error", err)
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}

	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.expiry, nil)
	if err != nil {
		log.Errorf("Error generating presigned URL: %s", err)
		return "", fmt.Errorf("failed to presign audio url: %w", err)
	}
	log.Debugw("音频已上传", "object", objectName, "size", len(audio))
	return presignedURL.String(), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
