// Package videofs resolves playback sources to local files. Local paths
// pass through after validation; s3://bucket/key sources are downloaded to
// a temporary file first, using the same environment-driven AWS setup the
// rest of the app relies on.
package videofs

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Resolve turns a source argument into a playable local path. cleanup
// removes any temporary download and is always safe to call.
func Resolve(raw string) (path string, cleanup func(), err error) {
	noop := func() {}
	if strings.HasPrefix(raw, "s3://") {
		return downloadFromS3(raw)
	}

	info, err := os.Stat(raw)
	if err != nil {
		return "", noop, err
	}
	if info.IsDir() {
		return "", noop, fmt.Errorf("%s is a directory, not a video file", raw)
	}
	return raw, noop, nil
}

// SplitS3URI splits s3://bucket/key into bucket and key.
func SplitS3URI(uri string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(uri, "s3://")
	bucket, key, ok := strings.Cut(trimmed, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed S3 URI %q (want s3://bucket/key)", uri)
	}
	return bucket, key, nil
}

func downloadFromS3(uri string) (string, func(), error) {
	noop := func() {}
	bucket, key, err := SplitS3URI(uri)
	if err != nil {
		return "", noop, err
	}

	// Credentials and region come from the environment, matching the
	// deployment model for every other knob.
	region := os.Getenv("AWS_DEFAULT_REGION")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if region == "" || accessKey == "" || secretKey == "" {
		return "", noop, errors.New("missing one or more required environment variables: AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return "", noop, err
	}

	obj, err := s3.New(sess).GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", noop, fmt.Errorf("fetch s3://%s/%s: %w", bucket, key, err)
	}
	defer obj.Body.Close()

	tmp, err := os.CreateTemp("", "vidframe-*"+filepath.Ext(key))
	if err != nil {
		return "", noop, err
	}
	n, err := io.Copy(tmp, obj.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", noop, fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}

	log.Printf("videofs: downloaded s3://%s/%s (%d bytes) to %s", bucket, key, n, tmp.Name())
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}
