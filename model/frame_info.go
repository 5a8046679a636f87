package model

// Template is the object reference model template a frame instantiates.
type Template string

const (
	TemplateUndefined         Template = "ORMT_UNDEFINED"
	TemplateBiAxisOrigin2D    Template = "ORMT_BI_AXIS_ORIGIN_2D"
	TemplateBiAxisOrigin3D    Template = "ORMT_BI_AXIS_ORIGIN_3D"
	TemplateOblateEllipsoid   Template = "ORMT_OBLATE_ELLIPSOID"
	TemplateSphere            Template = "ORMT_SPHERE"
	TemplateTriAxialEllipsoid Template = "ORMT_TRI_AXIAL_ELLIPSOID"
	TemplateTriPlane          Template = "ORMT_TRI_PLANE"
)

// ParseTemplate maps a template label to a Template.
func ParseTemplate(s string) (Template, bool) {
	switch t := Template(s); t {
	case TemplateBiAxisOrigin2D, TemplateBiAxisOrigin3D, TemplateOblateEllipsoid,
		TemplateSphere, TemplateTriAxialEllipsoid, TemplateTriPlane, TemplateUndefined:
		return t, true
	default:
		return TemplateUndefined, false
	}
}

// Geodetic reports whether the template has a surface that supports latitude
// and longitude: a sphere or an oblate ellipsoid.
func (t Template) Geodetic() bool {
	return t == TemplateSphere || t == TemplateOblateEllipsoid
}

// FrameInfo is the descriptive record of a frame.
type FrameInfo struct {
	Frame          Frame
	PublishedName  string
	Template       Template
	ReferenceDatum string // RD code label, e.g. "RD_WGS_1984"
	ReferenceFrame Frame
}
