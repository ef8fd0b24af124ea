// Command cubetool bakes a grading Params block to a .cube LUT file and
// can apply a .cube file to a PNG image, exercising the LUT package
// end to end from the command line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/crispen/gradingcore/transform"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "bake":
		runBake(os.Args[2:])
	case "apply":
		runApply(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cubetool bake -out grade.cube [flags]")
	fmt.Fprintln(os.Stderr, "       cubetool apply -lut grade.cube -in src.png -out graded.png")
	os.Exit(2)
}

func runBake(args []string) {
	fs := flag.NewFlagSet("bake", flag.ExitOnError)
	size := fs.Int("size", 33, "LUT edge length (33 or 65)")
	out := fs.String("out", "grade.cube", "output .cube path")
	title := fs.String("title", "", "optional TITLE directive")
	contrast := fs.Float64("contrast", 1, "contrast around the pivot")
	saturation := fs.Float64("saturation", 1, "saturation multiplier")
	hue := fs.Float64("hue", 0, "hue rotation in degrees")
	temperature := fs.Float64("temperature", 0, "white balance temperature offset")
	tint := fs.Float64("tint", 0, "white balance tint offset")
	preview := fs.String("preview", "", "optional PNG path for a mid-depth slice preview")
	previewSize := fs.Int("preview-size", 256, "preview PNG edge length in pixels")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("cubetool: %v", err)
	}

	params := transform.DefaultParams()
	params.Contrast = float32(*contrast)
	params.Saturation = float32(*saturation)
	params.Hue = float32(*hue)
	params.Temperature = float32(*temperature)
	params.Tint = float32(*tint)

	l, err := bakeLut(params, *size)
	if err != nil {
		log.Fatalf("cubetool: bake: %v", err)
	}
	if err := writeCube(*out, l, *title); err != nil {
		log.Fatalf("cubetool: bake: %v", err)
	}
	log.Printf("baked %dx%dx%d LUT to %s", *size, *size, *size, *out)

	if *preview != "" {
		if err := writeSlicePreview(l, *previewSize, *preview); err != nil {
			log.Fatalf("cubetool: preview: %v", err)
		}
		log.Printf("wrote preview slice to %s", *preview)
	}
}

func runApply(args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	lutPath := fs.String("lut", "", ".cube file to apply")
	inPath := fs.String("in", "", "input PNG image")
	outPath := fs.String("out", "graded.png", "output PNG image")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("cubetool: %v", err)
	}
	if *lutPath == "" || *inPath == "" {
		fmt.Fprintln(os.Stderr, "cubetool: apply requires -lut and -in")
		os.Exit(2)
	}

	l, err := readCube(*lutPath)
	if err != nil {
		log.Fatalf("cubetool: apply: %v", err)
	}

	src, width, height, err := readPNGLinear(*inPath)
	if err != nil {
		log.Fatalf("cubetool: apply: read image: %v", err)
	}

	graded := applyLut(l, src, width, height)

	if err := writePNGFromLinear(graded, width, height, *outPath); err != nil {
		log.Fatalf("cubetool: apply: write image: %v", err)
	}
	log.Printf("applied %s to %s -> %s", *lutPath, *inPath, *outPath)
}
