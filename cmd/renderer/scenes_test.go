package main

import (
	"context"
	"testing"

	"row-major/phong/camera"
	"row-major/phong/render"
	"row-major/phong/rgb"
	"row-major/phong/transform"

	"github.com/google/go-cmp/cmp"
)

func TestDemosRender(t *testing.T) {
	for _, name := range demoNames() {
		t.Run(name, func(t *testing.T) {
			d, err := lookupDemo(name)
			if err != nil {
				t.Fatalf("lookupDemo(%q): %v", name, err)
			}

			world, err := d.scene.Crush()
			if err != nil {
				t.Fatalf("Crush: %v", err)
			}

			cam := camera.New(16, 8, 1.0471975511965976)
			if err := cam.SetTransform(transform.ViewTransform(d.from, d.to, d.up)); err != nil {
				t.Fatalf("SetTransform: %v", err)
			}

			im, err := render.Render(context.Background(), world, cam, &render.Options{Workers: 2}, nil)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}

			lit := false
			for _, p := range im.Pixels {
				if p != rgb.Black {
					lit = true
					break
				}
			}
			if !lit {
				t.Errorf("scene %q rendered entirely black", name)
			}
		})
	}
}

func TestDemoNames(t *testing.T) {
	want := []string{"cubes", "default", "patterns", "spheres"}
	if diff := cmp.Diff(demoNames(), want); diff != "" {
		t.Errorf("Bad demo names; diff (-got +want)\n%s", diff)
	}
}

func TestUnknownDemo(t *testing.T) {
	if _, err := lookupDemo("teapot"); err == nil {
		t.Errorf("lookupDemo(\"teapot\") succeeded, want error")
	}
}
