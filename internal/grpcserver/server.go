// Package grpcserver serves the role catalog and the application pipeline
// over gRPC for internal callers such as the gateway.
//
// It delegates all business logic to the catalog pipeline and the
// application service and handles only the transport concerns: metadata
// extraction, error mapping and conversion to google.protobuf.Struct.
package grpcserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"matchahire/marketplace/internal/catalog"
	"matchahire/marketplace/internal/model"
)

// Roles is the read side of the role catalog.
type Roles interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	GetRole(ctx context.Context, id string) (model.Role, error)
}

// Applications moves candidates through the hiring pipeline.
type Applications interface {
	Move(ctx context.Context, id, stage string) (model.Application, error)
}

// Server implements CatalogServer.
type Server struct {
	roles    Roles
	apps     Applications
	pageSize int
}

var _ CatalogServer = (*Server)(nil)

// NewServer constructs a Server. pageSize <= 0 uses catalog.DefaultPageSize.
func NewServer(roles Roles, apps Applications, pageSize int) *Server {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &Server{roles: roles, apps: apps, pageSize: pageSize}
}

// ─── RPC implementations ──────────────────────────────────────────────────────

// ListRoles runs the filter and pagination pipeline over published roles.
// Accepted keys: search, location, type, level, page, pageSize.
func (s *Server) ListRoles(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	size := s.pageSize
	if n := intField(req, "pageSize"); n != 0 {
		if n < 1 || n > 50 {
			return nil, status.Error(codes.InvalidArgument, "pageSize must be between 1 and 50")
		}
		size = n
	}

	roles, err := s.roles.ListRoles(ctx)
	if err != nil {
		return nil, toGRPCError(err)
	}

	st := catalog.NewFilterState().
		WithSearch(stringField(req, "search")).
		WithLocation(stringField(req, "location")).
		WithEmploymentType(stringField(req, "type")).
		WithExperienceLevel(stringField(req, "level"))
	if p := intField(req, "page"); p != 0 {
		st.Page = p
	}

	return toStruct(catalog.Build(roles, st, size))
}

// GetRole returns a single role by id.
func (s *Server) GetRole(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, "id")
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	role, err := s.roles.GetRole(ctx, id)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return toStruct(role)
}

// MoveApplication advances an application to a new stage on behalf of the caller.
func (s *Server) MoveApplication(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := userIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	id, stage := stringField(req, "applicationId"), stringField(req, "stage")
	if id == "" || stage == "" {
		return nil, status.Error(codes.InvalidArgument, "applicationId and stage are required")
	}

	app, err := s.apps.Move(ctx, id, stage)
	if err != nil {
		return nil, toGRPCError(err)
	}
	slog.Info("[grpc] application moved", "application_id", id, "stage", stage, "by", userID)
	return toStruct(app)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// userIDFromCtx extracts the x-user-id value forwarded by the gateway
// via gRPC metadata.
func userIDFromCtx(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing metadata")
	}
	vals := md.Get("x-user-id")
	if len(vals) == 0 || vals[0] == "" {
		return "", status.Error(codes.Unauthenticated, "missing x-user-id metadata")
	}
	return vals[0], nil
}

// toGRPCError maps domain errors to gRPC status errors.
func toGRPCError(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	if errors.Is(err, model.ErrConflict) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return status.Error(codes.InvalidArgument, ve.Msg)
	}
	slog.Error("[grpc] request failed", "err", err)
	return status.Error(codes.Internal, "internal server error")
}

func stringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

func intField(s *structpb.Struct, key string) int {
	if s == nil {
		return 0
	}
	return int(s.GetFields()[key].GetNumberValue())
}

// toStruct converts v through its JSON form so field names match the REST API.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}

// UnaryLogger logs every call that ends in an error other than the
// client-side codes NotFound, InvalidArgument and Unauthenticated.
func UnaryLogger(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	switch status.Code(err) {
	case codes.OK, codes.NotFound, codes.InvalidArgument, codes.Unauthenticated:
	default:
		slog.Warn("[grpc] call failed", "method", info.FullMethod, "code", status.Code(err).String())
	}
	return resp, err
}
