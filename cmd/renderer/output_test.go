package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"row-major/phong/canvas"
	"row-major/phong/rgb"

	"github.com/google/go-cmp/cmp"
)

func TestGCSLocation(t *testing.T) {
	testCases := []struct {
		dest       string
		wantBucket string
		wantObject string
		wantRemote bool
		wantErr    bool
	}{
		{dest: "out.png"},
		{dest: "/tmp/out.ppm"},
		{dest: "gs://renders/scenes/out.png", wantBucket: "renders", wantObject: "scenes/out.png", wantRemote: true},
		{dest: "gs://renders", wantRemote: true, wantErr: true},
		{dest: "gs:///out.png", wantRemote: true, wantErr: true},
	}

	for _, tc := range testCases {
		bucket, object, remote, err := gcsLocation(tc.dest)
		if (err != nil) != tc.wantErr {
			t.Errorf("gcsLocation(%q) err = %v, wantErr %v", tc.dest, err, tc.wantErr)
			continue
		}
		if remote != tc.wantRemote {
			t.Errorf("gcsLocation(%q) remote = %v, want %v", tc.dest, remote, tc.wantRemote)
		}
		if tc.wantErr {
			continue
		}
		if bucket != tc.wantBucket || object != tc.wantObject {
			t.Errorf("gcsLocation(%q) = (%q, %q), want (%q, %q)", tc.dest, bucket, object, tc.wantBucket, tc.wantObject)
		}
	}
}

func TestWriteOutputLocal(t *testing.T) {
	dir := t.TempDir()

	im := canvas.New(3, 2)
	im.WritePixel(0, 0, rgb.T{1, 0, 0})
	im.WritePixel(2, 1, rgb.T{0, 0.5, 1})

	ppm := filepath.Join(dir, "out.ppm")
	if err := writeOutput(context.Background(), im, ppm, ""); err != nil {
		t.Fatalf("writeOutput(ppm): %v", err)
	}
	got, err := os.ReadFile(ppm)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(got), "P3\n3 2\n255\n") {
		t.Errorf("Bad PPM header in %q", got)
	}

	raw := filepath.Join(dir, "out.canvas")
	if err := writeOutput(context.Background(), im, raw, ""); err != nil {
		t.Fatalf("writeOutput(canvas): %v", err)
	}
	back, err := canvas.ReadCanvasFromFile(raw)
	if err != nil {
		t.Fatalf("ReadCanvasFromFile: %v", err)
	}
	if diff := cmp.Diff(back, im); diff != "" {
		t.Errorf("Bad canvas round trip; diff (-got +want)\n%s", diff)
	}

	if err := writeOutput(context.Background(), im, filepath.Join(dir, "out.jpg"), ""); err == nil {
		t.Errorf("writeOutput to .jpg succeeded, want error")
	}
}

func TestCheckDestination(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "exists.png")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	testCases := []struct {
		dest      string
		overwrite bool
		wantErr   bool
	}{
		{dest: filepath.Join(dir, "fresh.png")},
		{dest: existing, wantErr: true},
		{dest: existing, overwrite: true},
		{dest: filepath.Join(dir, "out.bmp"), wantErr: true},
		{dest: "gs://bucket/out.ppm"},
		{dest: "gs://bucket", wantErr: true},
	}
	for _, tc := range testCases {
		err := checkDestination(tc.dest, tc.overwrite)
		if (err != nil) != tc.wantErr {
			t.Errorf("checkDestination(%q, %v) = %v, wantErr %v", tc.dest, tc.overwrite, err, tc.wantErr)
		}
	}
}
