/*
Package s3 - AWS S3 doclib backend using AWS SDK for Go v2.

Each site is a bucket.  Paths below the bucket are the library paths, so /sites/{bucket}/Shared Documents/a.csv and
Shared Documents/a.csv both address the key "Shared Documents/a.csv".

# Config

	SiteURL   optional endpoint, ie: http://localhost:9000 for minio
	SiteName  bucket name
	Library   key prefix of the library
	Username  optional access key id
	Password  optional secret access key

# Usage

Rely on github.com/c2fo/doclib/backend

	import(
	    "github.com/c2fo/doclib/backend"
	    "github.com/c2fo/doclib/backend/s3"
	)

	func UseProvider() {
	    p := backend.Backend(s3.Scheme)
	    ...
	}

Or call directly:

	import "github.com/c2fo/doclib/backend/s3"

	func DoSomething() {
	    p := s3.NewProvider(
	        s3.WithOptions(
	            s3.Options{
	                Region:         "us-west-2",
	                RoleARN:        "arn:aws:iam::123456789012:role/MyRole",
	                ForcePathStyle: false,
	            },
	        ),
	    )

	    // to pass specific client, for instance a fake client
	    p = s3.NewProvider(s3.WithClient(myClient))
	}

# Authentication

Authentication occurs on Authenticate, which also checks the bucket with HeadBucket.  Credentials are resolved in this
order:

 1. Config.Username/Config.Password as a static key pair.

 2. Options.AccessKeyID/Options.SecretAccessKey (and SessionToken).

 3. Options.RoleARN, assumed through STS with the default credential chain.

 4. The default credential chain: environment, shared credentials file, then EC2/ECS roles.

# Versions

S3 keeps no creation time and no SharePoint-style version numbers.  Listings report the last modified time as the
creation time and version 1.0 for every object.

# Chunked uploads

Files larger than one chunk are uploaded as a multipart upload with one part per chunk, so chunkSize must be at least
5 MiB for them.  A failed part aborts the multipart upload.

See: https://github.com/aws/aws-sdk-go-v2/tree/main/service/s3
*/
package s3
