package hyperview

import (
	"encoding/json"
	"io"

	"github.com/samber/lo"
)

type pointJSON struct {
	X       Real `json:"x"`
	Y       Real `json:"y"`
	Z       Real `json:"z"`
	Visible bool `json:"visible"`
}

type meshJSON struct {
	Vertices  [][3]Real `json:"vertices"`
	Triangles [][3]int  `json:"triangles"`
}

type commandJSON struct {
	ID     string      `json:"id"`
	Mode   string      `json:"mode"`
	Color  string      `json:"color"`
	Points []pointJSON `json:"points,omitempty"`
	Scales []Real      `json:"scales,omitempty"`
	Edges  []Edge      `json:"edges,omitempty"`
	Mesh   *meshJSON   `json:"mesh,omitempty"`
}

type frameJSON struct {
	Frame    int             `json:"frame"`
	Commands []commandJSON   `json:"commands"`
	Changes  ResourceChanges `json:"changes"`
}

func commandToJSON(c RenderCommand, _ int) commandJSON {
	out := commandJSON{
		ID:     c.ID,
		Mode:   c.Mode.String(),
		Color:  c.Color.Hex(),
		Scales: c.Scales,
		Edges:  c.Edges,
		Points: lo.Map(c.Points, func(v Vertex3, _ int) pointJSON {
			return pointJSON{X: v.Pos.X, Y: v.Pos.Y, Z: v.Pos.Z, Visible: v.Visible}
		}),
	}
	if c.Mesh != nil {
		out.Mesh = &meshJSON{Triangles: c.Mesh.Triangles}
		for _, v := range c.Mesh.Vertices {
			out.Mesh.Vertices = append(out.Mesh.Vertices, [3]Real{v.X, v.Y, v.Z})
		}
	}
	return out
}

// WriteFrameJSON writes one tick's render commands and resource changes as
// indented JSON.
func WriteFrameJSON(w io.Writer, f Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(frameJSON{
		Frame:    f.Index,
		Commands: lo.Map(f.Commands, commandToJSON),
		Changes:  f.Changes,
	})
}
