package s3

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/utils"
)

// Session implements doclib.Session over one bucket.  Keys are the site-relative paths: /sites/{site}/Docs/a.txt and
// Docs/a.txt both address the key Docs/a.txt.
type Session struct {
	client  Client
	bucket  string
	options Options
}

func (s *Session) key(p string) string {
	return utils.ResolveKey(s.bucket, p)
}

// ListFolder returns the objects directly below folderPath.  S3 keeps no creation time or version numbers, so created
// is the last modified time and every object is version 1.0.
func (s *Session) ListFolder(ctx context.Context, folderPath string) ([]doclib.Record, error) {
	prefix := s.key(folderPath)
	if prefix != "" {
		prefix = utils.EnsureTrailingSlash(prefix)
	}

	records := make([]doclib.Record, 0)
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			modified := aws.ToTime(obj.LastModified)
			records = append(records, doclib.NewRecord(path.Base(key), utils.StableID(Scheme, s.bucket, key),
				aws.ToInt64(obj.Size), modified, modified, 1, 0))
		}
	}
	return records, nil
}

// ReadFile downloads the object at filePath with a manager.Downloader.
func (s *Session) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	downloader := manager.NewDownloader(s.client, func(d *manager.Downloader) {
		if s.options.DownloadPartitionSize > 0 {
			d.PartSize = s.options.DownloadPartitionSize
		}
	})

	buf := manager.NewWriteAtBuffer([]byte{})
	_, err := downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filePath)),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return buf.Bytes(), nil
}

// WriteFile uploads content with a manager.Uploader, overwriting any existing object.
func (s *Session) WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*doclib.Receipt, error) {
	key := utils.JoinPath(s.key(folderPath), fileName)
	uploader := manager.NewUploader(s.client, func(u *manager.Uploader) {
		if s.options.UploadPartitionSize > 0 {
			u.PartSize = s.options.UploadPartitionSize
		}
	})

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return s.receipt(key, int64(len(content)), 1), nil
}

func (s *Session) receipt(key string, size int64, chunks int) *doclib.Receipt {
	return &doclib.Receipt{
		Path:     key,
		UniqueID: utils.StableID(Scheme, s.bucket, key),
		Size:     size,
		Chunks:   chunks,
	}
}

// CreateUploadSession uploads localFilePath as one part per chunk of a multipart upload.  S3 rejects parts below
// 5 MiB other than the last, so chunkSize must be at least that for files larger than one chunk.  A file of a single
// chunk is put directly.
func (s *Session) CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	f, err := os.Open(filepath.Clean(localFilePath))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	key := utils.JoinPath(s.key(folderPath), filepath.Base(localFilePath))
	var (
		uploadID *string
		parts    []types.CompletedPart
	)

	chunks, total, err := backend.ReadChunks(f, chunkSize, func(chunk []byte, offset int64, last bool) error {
		if offset == 0 && last {
			if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    aws.String(key),
				Body:   bytes.NewReader(chunk),
			}); err != nil {
				return mapError(err)
			}
		} else {
			if uploadID == nil {
				out, err := s.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
					Bucket: aws.String(s.bucket),
					Key:    aws.String(key),
				})
				if err != nil {
					return mapError(err)
				}
				uploadID = out.UploadId
			}

			partNumber := aws.Int32(int32(len(parts) + 1))
			out, err := s.client.UploadPart(ctx, &s3.UploadPartInput{
				Bucket:     aws.String(s.bucket),
				Key:        aws.String(key),
				UploadId:   uploadID,
				PartNumber: partNumber,
				Body:       bytes.NewReader(chunk),
			})
			if err != nil {
				return mapError(err)
			}
			parts = append(parts, types.CompletedPart{ETag: out.ETag, PartNumber: partNumber})

			if last {
				if _, err := s.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
					Bucket:          aws.String(s.bucket),
					Key:             aws.String(key),
					UploadId:        uploadID,
					MultipartUpload: &types.CompletedMultipartUpload{Parts: parts},
				}); err != nil {
					return mapError(err)
				}
			}
		}

		if onChunk != nil {
			onChunk(offset + int64(len(chunk)))
		}
		return nil
	})
	if err != nil {
		if uploadID != nil {
			_, _ = s.client.AbortMultipartUpload(context.Background(), &s3.AbortMultipartUploadInput{
				Bucket:   aws.String(s.bucket),
				Key:      aws.String(key),
				UploadId: uploadID,
			})
		}
		return nil, err
	}
	return s.receipt(key, total, chunks), nil
}

// ListItems is not supported: buckets have no site lists.
func (s *Session) ListItems(context.Context, string) ([]doclib.ListItem, error) {
	return nil, doclib.ErrNotSupported
}

// Close is a no-op.
func (s *Session) Close() error {
	return nil
}
