package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/c2fo/doclib"
)

// Options holds s3-specific options.  Config values take precedence: Config.SiteURL is the endpoint and
// Config.Username/Password the static key pair when set.
type Options struct {
	AccessKeyID           string `json:"accessKeyId,omitempty"`
	SecretAccessKey       string `json:"secretAccessKey,omitempty"`
	SessionToken          string `json:"sessionToken,omitempty"`
	Region                string `json:"region,omitempty"`
	RoleARN               string `json:"roleARN,omitempty"`
	Endpoint              string `json:"endpoint,omitempty"`
	ForcePathStyle        bool   `json:"forcePathStyle,omitempty"`
	Retry                 aws.Retryer
	DownloadPartitionSize int64 // Partition size in bytes used to download files using manager.Downloader
	UploadPartitionSize   int64 // Partition size in bytes used to upload files using manager.Uploader
}

// merge returns o with the values cfg carries for this backend applied on top.
func (o Options) merge(cfg doclib.Config) Options {
	if cfg.SiteURL != "" {
		o.Endpoint = cfg.SiteURL
	}
	if cfg.Username != "" && cfg.Password != "" {
		o.AccessKeyID = cfg.Username
		o.SecretAccessKey = cfg.Password
		o.SessionToken = ""
	}
	return o
}

// getClient setup S3 client
func getClient(ctx context.Context, opt Options) (*s3.Client, error) {
	// setup default config
	awsConfig, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	// return client instance
	return s3.NewFromConfig(awsConfig, func(opts *s3.Options) {
		if opt.Region != "" {
			opts.Region = opt.Region
		}

		// set filepath for minio users
		opts.UsePathStyle = opt.ForcePathStyle

		// use specific endpoint, otherwise, will use aws "default endpoint resolver" based on region
		if opt.Endpoint != "" {
			opts.BaseEndpoint = aws.String(opt.Endpoint)
		}

		if opt.Retry != nil {
			opts.Retryer = opt.Retry
		}

		if opt.AccessKeyID != "" && opt.SecretAccessKey != "" {
			opts.Credentials = credentials.NewStaticCredentialsProvider(
				opt.AccessKeyID,
				opt.SecretAccessKey,
				opt.SessionToken,
			)
		} else if opt.RoleARN != "" {
			opts.Credentials = aws.NewCredentialsCache(stscreds.NewAssumeRoleProvider(sts.NewFromConfig(awsConfig), opt.RoleARN))
		}
	}), nil
}
