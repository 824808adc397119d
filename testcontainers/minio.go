package testcontainers

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend/s3"
	"github.com/c2fo/doclib/backend/testsuite"
)

const (
	minioRegion = "dummy"
	minioBucket = "miniobucket"
)

func registerMinio(t *testing.T) target {
	ctx := context.Background()
	is := require.New(t)

	ctr, err := minio.Run(ctx, "minio/minio:latest", testcontainers.WithName("doclib-minio"))
	testcontainers.CleanupContainer(t, ctr)
	is.NoError(err)

	ep, err := ctr.ConnectionString(ctx)
	is.NoError(err)

	cfg, err := config.LoadDefaultConfig(ctx)
	is.NoError(err)

	cli := awss3.NewFromConfig(cfg, func(opts *awss3.Options) {
		opts.Region = minioRegion
		opts.UsePathStyle = true
		opts.BaseEndpoint = aws.String("http://" + ep)
		opts.Credentials = credentials.NewStaticCredentialsProvider(ctr.Username, ctr.Password, "")
	})
	_, err = cli.CreateBucket(ctx, &awss3.CreateBucketInput{Bucket: aws.String(minioBucket)})
	is.NoError(err)

	return register(target{
		name:     "s3-minio",
		uri:      "s3://" + minioBucket + "/" + library + "/",
		provider: s3.NewProvider(s3.WithClient(cli)),
		cfg:      doclib.Config{SiteName: minioBucket, Library: library},
		opts:     testsuite.ConformanceOptions{MinChunkSize: s3MinPartSize},
	})
}
