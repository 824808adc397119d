package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeObject struct {
	data     []byte
	modified time.Time
}

type fakeUpload struct {
	bucket, key string
	parts       map[int32][]byte
}

// fakeS3 is an in-memory Client.  It keeps just enough of the S3 semantics for the manager Downloader and Uploader,
// multipart uploads and delimited listings.
type fakeS3 struct {
	mu       sync.Mutex
	buckets  map[string]map[string]fakeObject
	uploads  map[string]*fakeUpload
	nextID   int
	pageSize int32
	calls    []string
	failOn   string
}

func newFakeS3(buckets ...string) *fakeS3 {
	f := &fakeS3{
		buckets: make(map[string]map[string]fakeObject),
		uploads: make(map[string]*fakeUpload),
	}
	for _, b := range buckets {
		f.buckets[b] = make(map[string]fakeObject)
	}
	return f
}

func (f *fakeS3) record(call string) error {
	f.calls = append(f.calls, call)
	if call == f.failOn {
		return &types.NoSuchUpload{Message: aws.String("injected failure")}
	}
	return nil
}

func (f *fakeS3) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeS3) bucket(name *string) (map[string]fakeObject, error) {
	b, ok := f.buckets[aws.ToString(name)]
	if !ok {
		return nil, &types.NoSuchBucket{Message: aws.String(aws.ToString(name))}
	}
	return b, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetObject"); err != nil {
		return nil, err
	}
	b, err := f.bucket(in.Bucket)
	if err != nil {
		return nil, err
	}
	obj, ok := b[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String(aws.ToString(in.Key))}
	}

	size := int64(len(obj.data))
	if size == 0 {
		return &s3.GetObjectOutput{
			Body:          io.NopCloser(bytes.NewReader(nil)),
			ContentLength: aws.Int64(0),
			ContentRange:  aws.String("bytes */0"),
		}, nil
	}

	start, end := int64(0), size-1
	if r := aws.ToString(in.Range); r != "" {
		bounds := strings.SplitN(strings.TrimPrefix(r, "bytes="), "-", 2)
		start, _ = strconv.ParseInt(bounds[0], 10, 64)
		if e, err := strconv.ParseInt(bounds[1], 10, 64); err == nil {
			end = min(e, size-1)
		}
	}
	part := obj.data[start : end+1]
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(part)),
		ContentLength: aws.Int64(int64(len(part))),
		ContentRange:  aws.String(fmt.Sprintf("bytes %d-%d/%d", start, end, size)),
		LastModified:  aws.Time(obj.modified),
	}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("PutObject"); err != nil {
		return nil, err
	}
	b, err := f.bucket(in.Bucket)
	if err != nil {
		return nil, err
	}
	b[aws.ToString(in.Key)] = fakeObject{data: data, modified: time.Now().UTC().Truncate(time.Second)}
	return &s3.PutObjectOutput{ETag: aws.String(`"etag"`)}, nil
}

func (f *fakeS3) CreateMultipartUpload(_ context.Context, in *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateMultipartUpload"); err != nil {
		return nil, err
	}
	if _, err := f.bucket(in.Bucket); err != nil {
		return nil, err
	}
	f.nextID++
	id := strconv.Itoa(f.nextID)
	f.uploads[id] = &fakeUpload{bucket: aws.ToString(in.Bucket), key: aws.ToString(in.Key), parts: make(map[int32][]byte)}
	return &s3.CreateMultipartUploadOutput{UploadId: aws.String(id)}, nil
}

func (f *fakeS3) UploadPart(_ context.Context, in *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UploadPart"); err != nil {
		return nil, err
	}
	u, ok := f.uploads[aws.ToString(in.UploadId)]
	if !ok {
		return nil, &types.NoSuchUpload{}
	}
	n := aws.ToInt32(in.PartNumber)
	u.parts[n] = data
	return &s3.UploadPartOutput{ETag: aws.String(fmt.Sprintf(`"part-%d"`, n))}, nil
}

func (f *fakeS3) CompleteMultipartUpload(_ context.Context, in *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CompleteMultipartUpload"); err != nil {
		return nil, err
	}
	id := aws.ToString(in.UploadId)
	u, ok := f.uploads[id]
	if !ok {
		return nil, &types.NoSuchUpload{}
	}

	var buf bytes.Buffer
	for _, p := range in.MultipartUpload.Parts {
		buf.Write(u.parts[aws.ToInt32(p.PartNumber)])
	}
	f.buckets[u.bucket][u.key] = fakeObject{data: buf.Bytes(), modified: time.Now().UTC().Truncate(time.Second)}
	delete(f.uploads, id)
	return &s3.CompleteMultipartUploadOutput{Key: aws.String(u.key)}, nil
}

func (f *fakeS3) AbortMultipartUpload(_ context.Context, in *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "AbortMultipartUpload")
	delete(f.uploads, aws.ToString(in.UploadId))
	return &s3.AbortMultipartUploadOutput{}, nil
}

func (f *fakeS3) HeadBucket(_ context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("HeadBucket"); err != nil {
		return nil, err
	}
	if _, ok := f.buckets[aws.ToString(in.Bucket)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListObjectsV2"); err != nil {
		return nil, err
	}
	b, err := f.bucket(in.Bucket)
	if err != nil {
		return nil, err
	}

	prefix, delim := aws.ToString(in.Prefix), aws.ToString(in.Delimiter)
	keys := make([]string, 0)
	for key := range b {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if delim != "" && strings.Contains(strings.TrimPrefix(key, prefix), delim) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	start, _ := strconv.Atoi(aws.ToString(in.ContinuationToken))
	end := len(keys)
	if f.pageSize > 0 {
		end = min(end, start+int(f.pageSize))
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, key := range keys[start:end] {
		obj := b[key]
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(key),
			Size:         aws.Int64(int64(len(obj.data))),
			LastModified: aws.Time(obj.modified),
		})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}
