package s3

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"posts-backend/internal/entity"
	"posts-backend/internal/repo"
	"posts-backend/pkg/retry"
)

const (
	defaultContentType = "application/octet-stream"
	originTagKey       = "origin"
)

type MediaHost struct {
	minioClient *minio.Client
	bucket      string
	publicURL   string
}

// NewMediaHost создаёт бакет для медиафайлов, если его нет, и открывает его на анонимное чтение.
// publicURL - адрес, по которому файлы доступны снаружи; пустой - адрес самого MinIO.
func NewMediaHost(ctx context.Context, minioClient *minio.Client, bucket, region, publicURL string) (repo.MediaHost, error) {
	var exists bool
	err := retry.Retry(ctx, func() error {
		var err error
		exists, err = minioClient.BucketExists(ctx, bucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !exists {
		err = minioClient.MakeBucket(ctx, bucket, minio.MakeBucketOptions{
			Region: region,
		})
		if err != nil {
			return nil, err
		}
	}
	if err := minioClient.SetBucketPolicy(ctx, bucket, publicReadPolicy(bucket)); err != nil {
		return nil, err
	}
	if publicURL == "" {
		publicURL = minioClient.EndpointURL().String()
	}
	return &MediaHost{
		minioClient: minioClient,
		bucket:      bucket,
		publicURL:   strings.TrimRight(publicURL, "/"),
	}, nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

func (m *MediaHost) UploadFile(ctx context.Context, file *entity.MediaFile) (*entity.MediaObject, error) {
	if file.Reader == nil {
		return nil, errors.New("media file has no content")
	}
	contentType, err := resolveContentType(file)
	if err != nil {
		return nil, err
	}

	objectName := plainObjectName(file.FileName)
	if file.UniqueFileName {
		objectName = uniqueObjectName(file.FileName)
	}

	opts := minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": url.QueryEscape(file.FileName),
		},
	}
	if file.Origin != "" {
		opts.UserTags = map[string]string{originTagKey: file.Origin}
	}
	info, err := m.minioClient.PutObject(ctx, m.bucket, objectName, file.Reader, file.Size, opts)
	if err != nil {
		return nil, err
	}
	return &entity.MediaObject{
		URL:      m.objectURL(info.Key),
		FileName: info.Key,
	}, nil
}

func (m *MediaHost) DeleteFile(ctx context.Context, fileName string) error {
	return m.minioClient.RemoveObject(ctx, m.bucket, fileName, minio.RemoveObjectOptions{})
}

func (m *MediaHost) objectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, url.PathEscape(objectName))
}

// resolveContentType берёт заявленный тип, а если его нет - определяет по первым байтам файла.
// После определения reader возвращается в начало.
func resolveContentType(file *entity.MediaFile) (string, error) {
	if file.ContentType != "" && file.ContentType != defaultContentType {
		return file.ContentType, nil
	}
	mime, err := mimetype.DetectReader(file.Reader)
	if err != nil {
		return "", err
	}
	if _, err := file.Reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mime.String(), nil
}

// uniqueObjectName переводит название файла в base64 (без расширения) и добавляет к нему префикс uuid,
// чтобы избежать коллизий и проблем с кириллицей и пробелами
func uniqueObjectName(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_%s%s", uuid.New().String(), base64.RawURLEncoding.EncodeToString([]byte(stem)), ext)
}

func plainObjectName(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		return uuid.New().String()
	}
	return base
}
