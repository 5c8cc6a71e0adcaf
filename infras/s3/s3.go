package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bookingpay/config"
	"bookingpay/infras/otel"
	"bookingpay/shared/constant"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"
	defaultRegion    = "auto"
)

// S3 stores raw documents such as inbound webhook payloads.
type S3 interface {
	UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bucketName == "" {
		bucketName = svc.Config.External.S3.BucketName
	}

	scope.SetAttributes(map[string]any{
		otelAttrFileName: fileName,
		otelAttrBucket:   bucketName,
	})

	objectKey := path.Join(directory, fileName)
	fileReader := bytes.NewReader(fileData)

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          fileReader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileReader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.objectURL(bucketName, objectKey), nil
}

func (svc *s3Impl) objectURL(bucketName, objectKey string) string {
	publicURL := strings.TrimSuffix(svc.Config.External.S3.PublicURL, "/")
	if publicURL == "" {
		return fmt.Sprintf("s3://%s/%s", bucketName, objectKey)
	}

	return fmt.Sprintf("%s/%s", publicURL, objectKey)
}

// New returns an S3 client, or a discarding one when no bucket is configured.
func New(config *config.Config, otel otel.Otel) S3 {
	s3Config := config.External.S3
	if s3Config.BucketName == "" {
		log.Warn().Msg("No S3 bucket configured, payload archiving is disabled")

		return &noopS3{}
	}

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Config.AccessKeyID,
		s3Config.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	region := s3Config.Region
	if region == "" {
		region = defaultRegion
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Config.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3Config.Endpoint)
			o.UsePathStyle = true
		}

		o.Region = region
	})

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}

type noopS3 struct{}

func (n *noopS3) UploadFileBytes(_ context.Context, _, directory, fileName, _ string, _ []byte) (string, error) {
	log.Debug().Str("directory", directory).Str("file", fileName).Msg("S3 disabled, discarding upload")

	return constant.Empty, nil
}
