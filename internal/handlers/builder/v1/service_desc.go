// Package v1 serves the character builder over gRPC. Messages are
// google.protobuf.Struct so the surface needs no generated stubs; the
// service descriptors below are written the way protoc-gen-go-grpc would
// emit them.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service names on the wire
const (
	CharacterBuilderServiceName = "charbuilder.v1.CharacterBuilder"
	DiceServiceName             = "charbuilder.v1.Dice"
)

// CharacterBuilder method names
const (
	MethodCreateDraft         = "CreateDraft"
	MethodGetDraft            = "GetDraft"
	MethodDeleteDraft         = "DeleteDraft"
	MethodUpdateIdentity      = "UpdateIdentity"
	MethodUpdateAbilityScores = "UpdateAbilityScores"
	MethodRollAbilityScores   = "RollAbilityScores"
	MethodUpdateSkills        = "UpdateSkills"
	MethodUpdateSpells        = "UpdateSpells"
	MethodInitializeEquipment = "InitializeEquipment"
	MethodAddEquipment        = "AddEquipment"
	MethodRemoveEquipment     = "RemoveEquipment"
	MethodSetEquipped         = "SetEquipped"
	MethodGetCombatStats      = "GetCombatStats"
	MethodGetSpellcasting     = "GetSpellcasting"
	MethodAwardExperience     = "AwardExperience"
	MethodLevelUp             = "LevelUp"
	MethodManualLevelUp       = "ManualLevelUp"
	MethodCheckMulticlass     = "CheckMulticlass"
	MethodAddClass            = "AddClass"
)

// Dice method names
const (
	MethodRollDice         = "RollDice"
	MethodGetRollSession   = "GetRollSession"
	MethodClearRollSession = "ClearRollSession"
)

// CharacterBuilderServer is the server API for the CharacterBuilder service
type CharacterBuilderServer interface {
	CreateDraft(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDraft(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteDraft(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateIdentity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAbilityScores(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollAbilityScores(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateSkills(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateSpells(context.Context, *structpb.Struct) (*structpb.Struct, error)
	InitializeEquipment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddEquipment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveEquipment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetEquipped(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCombatStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSpellcasting(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AwardExperience(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LevelUp(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ManualLevelUp(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CheckMulticlass(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddClass(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// DiceServer is the server API for the Dice service
type DiceServer interface {
	RollDice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRollSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearRollSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryFunc func(srv any, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(service, method string, call unaryFunc) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + service + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv, ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func builderMethod(method string, call func(CharacterBuilderServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return unaryMethod(CharacterBuilderServiceName, method, func(srv any, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
		return call(srv.(CharacterBuilderServer), ctx, req)
	})
}

func diceMethod(method string, call func(DiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return unaryMethod(DiceServiceName, method, func(srv any, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
		return call(srv.(DiceServer), ctx, req)
	})
}

// CharacterBuilderServiceDesc is the grpc.ServiceDesc for the CharacterBuilder service
var CharacterBuilderServiceDesc = grpc.ServiceDesc{
	ServiceName: CharacterBuilderServiceName,
	HandlerType: (*CharacterBuilderServer)(nil),
	Methods: []grpc.MethodDesc{
		builderMethod(MethodCreateDraft, CharacterBuilderServer.CreateDraft),
		builderMethod(MethodGetDraft, CharacterBuilderServer.GetDraft),
		builderMethod(MethodDeleteDraft, CharacterBuilderServer.DeleteDraft),
		builderMethod(MethodUpdateIdentity, CharacterBuilderServer.UpdateIdentity),
		builderMethod(MethodUpdateAbilityScores, CharacterBuilderServer.UpdateAbilityScores),
		builderMethod(MethodRollAbilityScores, CharacterBuilderServer.RollAbilityScores),
		builderMethod(MethodUpdateSkills, CharacterBuilderServer.UpdateSkills),
		builderMethod(MethodUpdateSpells, CharacterBuilderServer.UpdateSpells),
		builderMethod(MethodInitializeEquipment, CharacterBuilderServer.InitializeEquipment),
		builderMethod(MethodAddEquipment, CharacterBuilderServer.AddEquipment),
		builderMethod(MethodRemoveEquipment, CharacterBuilderServer.RemoveEquipment),
		builderMethod(MethodSetEquipped, CharacterBuilderServer.SetEquipped),
		builderMethod(MethodGetCombatStats, CharacterBuilderServer.GetCombatStats),
		builderMethod(MethodGetSpellcasting, CharacterBuilderServer.GetSpellcasting),
		builderMethod(MethodAwardExperience, CharacterBuilderServer.AwardExperience),
		builderMethod(MethodLevelUp, CharacterBuilderServer.LevelUp),
		builderMethod(MethodManualLevelUp, CharacterBuilderServer.ManualLevelUp),
		builderMethod(MethodCheckMulticlass, CharacterBuilderServer.CheckMulticlass),
		builderMethod(MethodAddClass, CharacterBuilderServer.AddClass),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "charbuilder/v1/builder.proto",
}

// DiceServiceDesc is the grpc.ServiceDesc for the Dice service
var DiceServiceDesc = grpc.ServiceDesc{
	ServiceName: DiceServiceName,
	HandlerType: (*DiceServer)(nil),
	Methods: []grpc.MethodDesc{
		diceMethod(MethodRollDice, DiceServer.RollDice),
		diceMethod(MethodGetRollSession, DiceServer.GetRollSession),
		diceMethod(MethodClearRollSession, DiceServer.ClearRollSession),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "charbuilder/v1/dice.proto",
}

// RegisterCharacterBuilderServer registers srv on s
func RegisterCharacterBuilderServer(s grpc.ServiceRegistrar, srv CharacterBuilderServer) {
	s.RegisterService(&CharacterBuilderServiceDesc, srv)
}

// RegisterDiceServer registers srv on s
func RegisterDiceServer(s grpc.ServiceRegistrar, srv DiceServer) {
	s.RegisterService(&DiceServiceDesc, srv)
}

// Client calls either service by method name
type Client struct {
	cc      grpc.ClientConnInterface
	service string
}

// NewCharacterBuilderClient returns a client for the CharacterBuilder service
func NewCharacterBuilderClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc, service: CharacterBuilderServiceName}
}

// NewDiceClient returns a client for the Dice service
func NewDiceClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc, service: DiceServiceName}
}

// Call invokes a unary method
func (c *Client) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+c.service+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
