package rpc

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/hsr-catalog/model"
	"google.golang.org/protobuf/types/known/structpb"
)

// Struct field names shared by server and client.
const (
	fieldFrame          = "frame"
	fieldVariant        = "variant"
	fieldVariantOrdinal = "variant_ordinal"
	fieldName           = "name"
	fieldOrdinal        = "ordinal"
	fieldVariants       = "variants"
	fieldRegion         = "region"
)

var helmertFields = [7]string{"delta_x", "delta_y", "delta_z", "omega_1", "omega_2", "omega_3", "delta_scale"}

// number encodes NaN as null since JSON has no representation for it.
func number(v float64) *structpb.Value {
	if math.IsNaN(v) {
		return structpb.NewNullValue()
	}
	return structpb.NewNumberValue(v)
}

// numberOf decodes a number or null; anything else is an error.
func numberOf(v *structpb.Value) (float64, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return k.NumberValue, nil
	case *structpb.Value_NullValue, nil:
		return math.NaN(), nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrInvalidRequest, k)
	}
}

// TransformToStruct encodes a transform record.
func TransformToStruct(t model.Transform) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"label":             structpb.NewStringValue(t.Label),
		"description":       structpb.NewStringValue(t.Description),
		fieldFrame:          structpb.NewStringValue(t.Frame.String()),
		fieldVariant:        structpb.NewStringValue(t.Variant.Name()),
		fieldVariantOrdinal: structpb.NewNumberValue(float64(t.Variant.Ordinal())),
		"defined":           structpb.NewBoolValue(t.Defined()),
		fieldRegion: structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"lower_left_lat":   number(t.Region.LowerLeftLat),
			"lower_left_long":  number(t.Region.LowerLeftLong),
			"upper_right_lat":  number(t.Region.UpperRightLat),
			"upper_right_long": number(t.Region.UpperRightLong),
		}}),
	}
	for i, p := range t.Params() {
		fields[helmertFields[i]] = number(p)
	}
	return &structpb.Struct{Fields: fields}
}

// TransformFromStruct decodes a record produced by TransformToStruct.
func TransformFromStruct(s *structpb.Struct) (model.Transform, error) {
	f := s.GetFields()
	frame, err := model.ParseFrame(f[fieldFrame].GetStringValue())
	if err != nil {
		return model.Transform{}, err
	}
	ordinal, err := integer(f[fieldVariantOrdinal])
	if err != nil {
		return model.Transform{}, fmt.Errorf("%s: %w", fieldVariantOrdinal, err)
	}

	var p [7]float64
	for i, name := range helmertFields {
		if p[i], err = numberOf(f[name]); err != nil {
			return model.Transform{}, fmt.Errorf("%s: %w", name, err)
		}
	}
	rf := f[fieldRegion].GetStructValue().GetFields()
	var r [4]float64
	for i, name := range []string{"lower_left_lat", "lower_left_long", "upper_right_lat", "upper_right_long"} {
		if r[i], err = numberOf(rf[name]); err != nil {
			return model.Transform{}, fmt.Errorf("region.%s: %w", name, err)
		}
	}

	return model.Transform{
		Label:       f["label"].GetStringValue(),
		Description: f["description"].GetStringValue(),
		Frame:       frame,
		Variant:     model.NewVariant(frame, ordinal, f[fieldVariant].GetStringValue()),
		Helmert: model.Helmert{
			DeltaX:     p[0],
			DeltaY:     p[1],
			DeltaZ:     p[2],
			Omega1:     p[3],
			Omega2:     p[4],
			Omega3:     p[5],
			DeltaScale: p[6],
		},
		Region: model.Region{
			LowerLeftLat:   r[0],
			LowerLeftLong:  r[1],
			UpperRightLat:  r[2],
			UpperRightLong: r[3],
		},
	}, nil
}

// FrameInfoToStruct encodes frame metadata plus its variant count.
func FrameInfoToStruct(info model.FrameInfo, variants int) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldOrdinal:      structpb.NewNumberValue(float64(info.Frame.Ordinal())),
		fieldName:         structpb.NewStringValue(info.Frame.String()),
		"published_name":  structpb.NewStringValue(info.PublishedName),
		"template":        structpb.NewStringValue(string(info.Template)),
		"reference_datum": structpb.NewStringValue(info.ReferenceDatum),
		"reference_frame": structpb.NewStringValue(info.ReferenceFrame.String()),
		"variant_count":   structpb.NewNumberValue(float64(variants)),
	}}
}

// FrameInfoFromStruct decodes FrameInfoToStruct output.
func FrameInfoFromStruct(s *structpb.Struct) (model.FrameInfo, int, error) {
	f := s.GetFields()
	frame, err := model.ParseFrame(f[fieldName].GetStringValue())
	if err != nil {
		return model.FrameInfo{}, 0, err
	}
	ref, err := model.ParseFrame(f["reference_frame"].GetStringValue())
	if err != nil {
		return model.FrameInfo{}, 0, fmt.Errorf("reference_frame: %w", err)
	}
	tmpl, ok := model.ParseTemplate(f["template"].GetStringValue())
	if !ok {
		return model.FrameInfo{}, 0, fmt.Errorf("%w: unknown template %q", ErrInvalidRequest, f["template"].GetStringValue())
	}
	count, err := integer(f["variant_count"])
	if err != nil {
		return model.FrameInfo{}, 0, fmt.Errorf("variant_count: %w", err)
	}
	return model.FrameInfo{
		Frame:          frame,
		PublishedName:  f["published_name"].GetStringValue(),
		Template:       tmpl,
		ReferenceDatum: f["reference_datum"].GetStringValue(),
		ReferenceFrame: ref,
	}, count, nil
}

// integer accepts only whole numbers.
func integer(v *structpb.Value) (int, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: expected integer", ErrInvalidRequest)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidRequest, n.NumberValue)
	}
	if math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v is out of range", ErrInvalidRequest, n.NumberValue)
	}
	return int(n.NumberValue), nil
}

// frameFromValue accepts a frame name or a frame ordinal.
func frameFromValue(v *structpb.Value) (model.Frame, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return model.ParseFrame(k.StringValue)
	case *structpb.Value_NumberValue:
		n, err := integer(v)
		if err != nil {
			return model.FrameUndefined, err
		}
		return model.FrameForOrdinal(n)
	case nil:
		return model.FrameUndefined, fmt.Errorf("%w: %s is required", ErrInvalidRequest, fieldFrame)
	default:
		return model.FrameUndefined, fmt.Errorf("%w: %s must be a name or ordinal", ErrInvalidRequest, fieldFrame)
	}
}
