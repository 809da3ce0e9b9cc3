package hyperview

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// WriteRawMesh writes m as little-endian: vertex and triangle counts as
// int32, then x,y,z float64 per vertex, then three int32 indices per
// triangle.
func WriteRawMesh(w io.Writer, m Mesh) error {
	bw := bufio.NewWriter(w)
	// Header: counts as int32 (little-endian)
	if err := binary.Write(bw, binary.LittleEndian, [2]int32{int32(len(m.Vertices)), int32(len(m.Triangles))}); err != nil {
		return err
	}
	verts := make([]float64, 0, 3*len(m.Vertices))
	for _, v := range m.Vertices {
		verts = append(verts, v.X, v.Y, v.Z)
	}
	if err := binary.Write(bw, binary.LittleEndian, verts); err != nil {
		return err
	}
	tris := make([]int32, 0, 3*len(m.Triangles))
	for _, t := range m.Triangles {
		for _, i := range t {
			if i < 0 || i >= len(m.Vertices) {
				return errors.Errorf("triangle index %d out of range [0,%d)", i, len(m.Vertices))
			}
			tris = append(tris, int32(i))
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, tris); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadRawMesh is the inverse of WriteRawMesh.
func ReadRawMesh(r io.Reader) (Mesh, error) {
	br := bufio.NewReader(r)
	var hdr [2]int32
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return Mesh{}, errors.Wrap(err, "reading header")
	}
	if hdr[0] < 0 || hdr[1] < 0 {
		return Mesh{}, errors.Errorf("negative counts: vertices=%d triangles=%d", hdr[0], hdr[1])
	}
	verts := make([]float64, 3*int(hdr[0]))
	if err := binary.Read(br, binary.LittleEndian, verts); err != nil {
		return Mesh{}, errors.Wrap(err, "reading vertices")
	}
	idx := make([]int32, 3*int(hdr[1]))
	if err := binary.Read(br, binary.LittleEndian, idx); err != nil {
		return Mesh{}, errors.Wrap(err, "reading triangles")
	}
	m := Mesh{
		Vertices:  make([]r3.Vector, hdr[0]),
		Triangles: make([][3]int, hdr[1]),
	}
	for i := range m.Vertices {
		m.Vertices[i] = r3.Vector{X: verts[3*i], Y: verts[3*i+1], Z: verts[3*i+2]}
	}
	for i := range m.Triangles {
		m.Triangles[i] = [3]int{int(idx[3*i]), int(idx[3*i+1]), int(idx[3*i+2])}
	}
	return m, nil
}

// SaveRawMesh writes m to path, creating its directory.
func SaveRawMesh(path string, m Mesh) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteRawMesh(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadRawMesh reads a mesh written by SaveRawMesh.
func LoadRawMesh(path string) (Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return Mesh{}, err
	}
	defer f.Close()
	return ReadRawMesh(f)
}
