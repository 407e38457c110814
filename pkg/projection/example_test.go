package projection_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/beetlebugorg/segyproj/pkg/projection"
	"github.com/beetlebugorg/segyproj/pkg/segyproj"
)

func Example() {
	rw := segyproj.NewRewriter(projection.New(nil))
	opts := segyproj.DefaultOptions()
	opts.TargetSRS = 32630

	res, err := rw.ReprojectFile(context.Background(), "line_01.sgy", "line_01_wgs84.sgy", opts)
	if errors.Is(err, projection.ErrUnknownEPSG) {
		log.Fatalf("unsupported EPSG code: %v", err)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Traces, res.TargetBounds)
}
