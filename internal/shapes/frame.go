package shapes

import "github.com/aalvaropc/xmigraph/internal/codec"

var axisFields = []codec.Field{
	codec.F("local_axis_x", "LocalAxisX"),
	codec.F("local_axis_y", "LocalAxisY"),
	codec.F("local_axis_z", "LocalAxisZ"),
}

var offsetFields = []codec.Field{
	codec.F("begin_node_x_offset", "BeginNodeXOffset"),
	codec.F("end_node_x_offset", "EndNodeXOffset"),
	codec.F("begin_node_y_offset", "BeginNodeYOffset"),
	codec.F("end_node_y_offset", "EndNodeYOffset"),
	codec.F("begin_node_z_offset", "BeginNodeZOffset"),
	codec.F("end_node_z_offset", "EndNodeZOffset"),
}

// Axes is the local coordinate system of a member.
type Axes struct {
	LocalAxisX Vec3
	LocalAxisY Vec3
	LocalAxisZ Vec3
}

func readAxes(r *reader) Axes {
	return Axes{
		LocalAxisX: r.axis("local_axis_x", AxisX),
		LocalAxisY: r.axis("local_axis_y", AxisY),
		LocalAxisZ: r.axis("local_axis_z", AxisZ),
	}
}

func (a Axes) put(rec codec.Record) {
	rec["local_axis_x"] = a.LocalAxisX.String()
	rec["local_axis_y"] = a.LocalAxisY.String()
	rec["local_axis_z"] = a.LocalAxisZ.String()
}

// NodeOffsets shift a member's begin and end nodes along each axis.
type NodeOffsets struct {
	BeginNodeXOffset float64
	EndNodeXOffset   float64
	BeginNodeYOffset float64
	EndNodeYOffset   float64
	BeginNodeZOffset float64
	EndNodeZOffset   float64
}

func readOffsets(r *reader) NodeOffsets {
	return NodeOffsets{
		BeginNodeXOffset: r.floatOr("begin_node_x_offset", 0),
		EndNodeXOffset:   r.floatOr("end_node_x_offset", 0),
		BeginNodeYOffset: r.floatOr("begin_node_y_offset", 0),
		EndNodeYOffset:   r.floatOr("end_node_y_offset", 0),
		BeginNodeZOffset: r.floatOr("begin_node_z_offset", 0),
		EndNodeZOffset:   r.floatOr("end_node_z_offset", 0),
	}
}

func (o NodeOffsets) put(rec codec.Record) {
	rec["begin_node_x_offset"] = o.BeginNodeXOffset
	rec["end_node_x_offset"] = o.EndNodeXOffset
	rec["begin_node_y_offset"] = o.BeginNodeYOffset
	rec["end_node_y_offset"] = o.EndNodeYOffset
	rec["begin_node_z_offset"] = o.BeginNodeZOffset
	rec["end_node_z_offset"] = o.EndNodeZOffset
}

func fields(groups ...[]codec.Field) []codec.Field {
	var out []codec.Field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
