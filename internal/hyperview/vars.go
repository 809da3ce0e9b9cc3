package hyperview

var (
	_ Projector = Perspective{}
	_ Projector = Orthographic{}
)
