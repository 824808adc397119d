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
	"github.com/testcontainers/testcontainers-go/modules/localstack"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend/s3"
	"github.com/c2fo/doclib/backend/testsuite"
)

const (
	localStackPort   = "4566/tcp"
	localStackRegion = "dummy"
	localStackKey    = "dummy"
	localStackSecret = "dummy"
	localStackBucket = "localstack"

	// s3MinPartSize is the smallest multipart part S3 accepts.
	s3MinPartSize = 5 * 1024 * 1024
)

func registerLocalStack(t *testing.T) target {
	ctx := context.Background()
	is := require.New(t)

	ctr, err := localstack.Run(ctx, "localstack/localstack:latest", testcontainers.WithName("doclib-localstack"))
	testcontainers.CleanupContainer(t, ctr)
	is.NoError(err)

	ep, err := ctr.PortEndpoint(ctx, localStackPort, "http")
	is.NoError(err)

	cfg, err := config.LoadDefaultConfig(ctx)
	is.NoError(err)

	cli := awss3.NewFromConfig(cfg, func(opts *awss3.Options) {
		opts.Region = localStackRegion
		opts.UsePathStyle = true
		opts.BaseEndpoint = aws.String(ep)
		opts.Credentials = credentials.NewStaticCredentialsProvider(localStackKey, localStackSecret, "")
	})
	_, err = cli.CreateBucket(ctx, &awss3.CreateBucketInput{Bucket: aws.String(localStackBucket)})
	is.NoError(err)

	return register(target{
		name:     "s3-localstack",
		uri:      "s3://" + localStackBucket + "/" + library + "/",
		provider: s3.NewProvider(s3.WithClient(cli)),
		cfg:      doclib.Config{SiteName: localStackBucket, Library: library},
		opts:     testsuite.ConformanceOptions{MinChunkSize: s3MinPartSize},
	})
}
