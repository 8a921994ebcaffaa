package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"row-major/phong/canvas"

	"cloud.google.com/go/storage"
	googleopt "google.golang.org/api/option"
)

// gcsLocation splits gs://bucket/object.  ok is false for anything else.
func gcsLocation(dest string) (bucket, object string, ok bool, err error) {
	if !strings.HasPrefix(dest, "gs://") {
		return "", "", false, nil
	}
	rest := strings.TrimPrefix(dest, "gs://")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", true, fmt.Errorf("malformed Cloud Storage destination %q, want gs://bucket/object", dest)
	}
	return parts[0], parts[1], true, nil
}

type encoder struct {
	contentType string
	encode      func(c *canvas.Canvas, w io.Writer) error
}

func encoderFor(name string) (*encoder, error) {
	switch ext := path.Ext(name); ext {
	case ".ppm":
		return &encoder{"image/x-portable-pixmap", (*canvas.Canvas).WritePPM}, nil
	case ".png":
		return &encoder{"image/png", (*canvas.Canvas).WritePNG}, nil
	case ".canvas":
		return &encoder{"application/octet-stream", canvas.WriteCanvas}, nil
	default:
		return nil, fmt.Errorf("unknown output extension %q for %q", ext, name)
	}
}

// checkDestination fails early, before any tracing, on an output name that
// writeOutput would reject.
func checkDestination(dest string, overwrite bool) error {
	if _, err := encoderFor(dest); err != nil {
		return err
	}
	_, _, remote, err := gcsLocation(dest)
	if err != nil {
		return err
	}
	if remote || overwrite {
		return nil
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("output file %q already exists; pass -overwrite to replace it", dest)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("while checking output file %q: %w", dest, err)
	}
	return nil
}

func writeOutput(ctx context.Context, im *canvas.Canvas, dest, credentialsFile string) error {
	enc, err := encoderFor(dest)
	if err != nil {
		return err
	}

	bucket, object, remote, err := gcsLocation(dest)
	if err != nil {
		return err
	}
	if remote {
		return uploadOutput(ctx, im, enc, bucket, object, credentialsFile)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("while creating output file: %w", err)
	}
	if err := enc.encode(im, f); err != nil {
		f.Close()
		return fmt.Errorf("while encoding %q: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("while closing output file: %w", err)
	}
	return nil
}

func uploadOutput(ctx context.Context, im *canvas.Canvas, enc *encoder, bucket, object, credentialsFile string) error {
	opts := []googleopt.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, googleopt.WithCredentialsFile(credentialsFile))
	}
	gcs, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("while creating storage client: %w", err)
	}
	defer gcs.Close()

	w := gcs.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = enc.contentType
	if err := enc.encode(im, w); err != nil {
		w.Close()
		return fmt.Errorf("while encoding gs://%s/%s: %w", bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("while finishing upload to gs://%s/%s: %w", bucket, object, err)
	}
	return nil
}
