// Command framedump converts a cached frame directory (spec §4.5 "Frame
// cache") into VTK ImageData (.vti) files for viewing. It is grounded on
// tools/GenVtu.go's buffer-built XML writing shape (io.Ff into a
// header/body/footer buffer, then io.WriteFile), retargeted from
// UnstructuredGrid cell-by-cell export to the simpler ImageData
// extent/origin/spacing header that a regular voxel grid needs no cell
// connectivity to describe.
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {
	frameDir := flag.String("dir", "", "frame cache directory")
	step := flag.Int("step", 0, "step index of the frame to convert")
	field := flag.String("field", "vx", "field to export: vx, vy, vz, tomo, cross")
	w := flag.Int("w", 0, "grid width (voxels)")
	h := flag.Int("h", 0, "grid height (voxels)")
	d := flag.Int("d", 1, "grid depth (voxels; 1 for 2D slice fields)")
	dx := flag.Float64("dx", 1.0, "voxel spacing")
	flag.Parse()

	if *frameDir == "" || *w <= 0 || *h <= 0 {
		io.Pf("usage: framedump -dir <frame-cache-dir> -step <n> -field <vx|vy|vz|tomo|cross> -w <W> -h <H> [-d <D>] [-dx <spacing>]\n")
		os.Exit(2)
	}

	src := io.Sf("%s/frame_%08d.%s.bin", *frameDir, *step, *field)
	out := io.Sf("%s/frame_%08d.%s.vti", *frameDir, *step, *field)

	data, err := os.ReadFile(src)
	if err != nil {
		chk.Panic("framedump: cannot read %s: %v\n", src, err)
	}

	if err := writeImageData(out, data, *w, *h, *d, *dx); err != nil {
		chk.Panic("framedump: cannot write %s: %v\n", out, err)
	}
	io.Pf("wrote %s\n", out)
}

// writeImageData writes a VTK ImageData (.vti) file wrapping a raw
// little-endian float32 volume as an inline base64-encoded binary DataArray.
func writeImageData(path string, raw []byte, w, h, d int, dx float64) error {
	n := w * h * d
	if len(raw) != n*4 {
		return chk.Err("framedump: field has %d bytes, want %d (w*h*d*4)\n", len(raw), n*4)
	}

	dExtent := max(0, d-1)

	var hdr, body, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"ImageData\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	io.Ff(&hdr, "<ImageData WholeExtent=\"0 %d 0 %d 0 %d\" Origin=\"0 0 0\" Spacing=\"%g %g %g\">\n",
		w-1, h-1, dExtent, dx, dx, dx)
	io.Ff(&hdr, "<Piece Extent=\"0 %d 0 %d 0 %d\">\n<PointData Scalars=\"field\">\n", w-1, h-1, dExtent)
	io.Ff(&hdr, "<DataArray type=\"Float32\" Name=\"field\" format=\"binary\">\n")

	// VTK's inline "binary" format is a base64-encoded byte count
	// header followed by the base64-encoded payload.
	var countHdr [4]byte
	binary.LittleEndian.PutUint32(countHdr[:], uint32(len(raw)))
	io.Ff(&body, "%s", base64.StdEncoding.EncodeToString(countHdr[:]))
	io.Ff(&body, "%s\n", base64.StdEncoding.EncodeToString(raw))

	io.Ff(&foo, "</DataArray>\n</PointData>\n</Piece>\n</ImageData>\n</VTKFile>\n")

	return io.WriteFile(path, &hdr, &body, &foo)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
