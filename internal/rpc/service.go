// Package rpc exposes the catalog over gRPC. Messages are
// google.protobuf.Struct values so no generated code is required.
package rpc

import (
	"context"
	"fmt"
	"strconv"

	"github.com/signalsfoundry/hsr-catalog/catalog"
	"github.com/signalsfoundry/hsr-catalog/internal/logging"
	"github.com/signalsfoundry/hsr-catalog/model"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "hsr.catalog.v1.TransformCatalog"

const (
	methodGetTransform = "/" + ServiceName + "/GetTransform"
	methodListVariants = "/" + ServiceName + "/ListVariants"
	methodResolveFrame = "/" + ServiceName + "/ResolveFrame"
)

// TransformCatalogServer is the server API for the catalog service.
type TransformCatalogServer interface {
	GetTransform(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListVariants(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveFrame(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the catalog service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TransformCatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetTransform", Handler: unaryHandler(methodGetTransform, TransformCatalogServer.GetTransform)},
		{MethodName: "ListVariants", Handler: unaryHandler(methodListVariants, TransformCatalogServer.ListVariants)},
		{MethodName: "ResolveFrame", Handler: unaryHandler(methodResolveFrame, TransformCatalogServer.ResolveFrame)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hsr/catalog/v1/catalog.proto",
}

// RegisterTransformCatalogServer registers srv on s.
func RegisterTransformCatalogServer(s grpc.ServiceRegistrar, srv TransformCatalogServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unaryHandler(fullMethod string, call func(TransformCatalogServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TransformCatalogServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(TransformCatalogServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CatalogService implements TransformCatalogServer over a loaded catalog.
type CatalogService struct {
	cat *catalog.Catalog
	log logging.Logger
}

// NewCatalogService wires a CatalogService to a loaded catalog and optional logger.
func NewCatalogService(cat *catalog.Catalog, log logging.Logger) *CatalogService {
	if log == nil {
		log = logging.Noop()
	}
	return &CatalogService{cat: cat, log: log}
}

func (s *CatalogService) ensureReady() error {
	if s == nil || s.cat == nil {
		return status.Error(codes.Unavailable, "catalog not loaded")
	}
	return nil
}

func (s *CatalogService) logger(ctx context.Context) logging.Logger {
	if l := logging.LoggerFromContext(ctx); l != nil {
		return l
	}
	return s.log
}

// GetTransform handles {frame, variant}. variant may be a canonical name, a
// decimal string or a number; numbers are ordinals within frame.
func (s *CatalogService) GetTransform(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	frame, err := frameFromValue(in.GetFields()[fieldFrame])
	if err != nil {
		return nil, ToStatusError(err)
	}
	variant, err := s.variantFromValue(in.GetFields()[fieldVariant])
	if err != nil {
		return nil, ToStatusError(err)
	}

	ctx, span := StartLookupSpan(ctx, "catalog.GetTransform", frame, variant.String())
	defer span.End()

	t, err := s.cat.GetTransform(frame, variant)
	if err != nil {
		span.RecordError(err)
		s.logger(ctx).Debug(ctx, "transform lookup failed",
			logging.String("frame", frame.String()),
			logging.String("variant", variant.String()),
			logging.Err(err),
		)
		return nil, ToStatusError(err)
	}
	return TransformToStruct(t), nil
}

// ListVariants handles {frame} and returns every record of the frame in
// authored order.
func (s *CatalogService) ListVariants(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	frame, err := frameFromValue(in.GetFields()[fieldFrame])
	if err != nil {
		return nil, ToStatusError(err)
	}

	_, span := StartLookupSpan(ctx, "catalog.ListVariants", frame, "")
	defer span.End()

	records, err := s.cat.Variants(frame)
	if err != nil {
		span.RecordError(err)
		return nil, ToStatusError(err)
	}
	values := make([]*structpb.Value, 0, len(records))
	for _, t := range records {
		values = append(values, structpb.NewStructValue(TransformToStruct(t)))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldFrame:    structpb.NewStringValue(frame.String()),
		fieldVariants: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}, nil
}

// ResolveFrame handles {name} or {ordinal}.
func (s *CatalogService) ResolveFrame(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	fields := in.GetFields()
	var (
		frame model.Frame
		err   error
	)
	switch {
	case fields[fieldName] != nil:
		frame, err = frameFromValue(fields[fieldName])
	case fields[fieldOrdinal] != nil:
		frame, err = frameFromValue(fields[fieldOrdinal])
	default:
		err = fmt.Errorf("%w: one of %s or %s is required", ErrInvalidRequest, fieldName, fieldOrdinal)
	}
	if err != nil {
		return nil, ToStatusError(err)
	}

	info, err := s.cat.FrameInfo(frame)
	if err != nil {
		return nil, ToStatusError(err)
	}
	count := 0
	if records, err := s.cat.Variants(frame); err == nil {
		count = len(records)
	}
	return FrameInfoToStruct(info, count), nil
}

func (s *CatalogService) variantFromValue(v *structpb.Value) (model.Variant, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return s.cat.ParseVariant(k.StringValue)
	case *structpb.Value_NumberValue:
		n, err := integer(v)
		if err != nil {
			return model.Variant{}, err
		}
		return model.VariantOrdinal(n), nil
	case nil:
		return model.Variant{}, fmt.Errorf("%w: %s is required", ErrInvalidRequest, fieldVariant)
	default:
		return model.Variant{}, fmt.Errorf("%w: %s must be a name or ordinal", ErrInvalidRequest, fieldVariant)
	}
}

// Client is a thin typed wrapper over a connection to the catalog service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a Client using cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// GetTransform fetches (frame, variant). variant is a canonical name or a
// decimal ordinal.
func (c *Client) GetTransform(ctx context.Context, frame, variant string, opts ...grpc.CallOption) (model.Transform, error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldFrame:   structpb.NewStringValue(frame),
		fieldVariant: variantValue(variant),
	}}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodGetTransform, req, out, opts...); err != nil {
		return model.Transform{}, err
	}
	return TransformFromStruct(out)
}

func variantValue(variant string) *structpb.Value {
	if n, err := strconv.Atoi(variant); err == nil {
		return structpb.NewNumberValue(float64(n))
	}
	return structpb.NewStringValue(variant)
}

// ListVariants fetches every record of frame in authored order.
func (c *Client) ListVariants(ctx context.Context, frame string, opts ...grpc.CallOption) ([]model.Transform, error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldFrame: structpb.NewStringValue(frame),
	}}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodListVariants, req, out, opts...); err != nil {
		return nil, err
	}
	values := out.GetFields()[fieldVariants].GetListValue().GetValues()
	records := make([]model.Transform, 0, len(values))
	for _, v := range values {
		t, err := TransformFromStruct(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		records = append(records, t)
	}
	return records, nil
}

// ResolveFrame fetches frame metadata by name and the number of variants it has.
func (c *Client) ResolveFrame(ctx context.Context, name string, opts ...grpc.CallOption) (model.FrameInfo, int, error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldName: structpb.NewStringValue(name),
	}}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodResolveFrame, req, out, opts...); err != nil {
		return model.FrameInfo{}, 0, err
	}
	return FrameInfoFromStruct(out)
}

var _ TransformCatalogServer = (*CatalogService)(nil)

// IsNotFound reports whether err is the status returned for a frame/variant
// pair that has no record.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
