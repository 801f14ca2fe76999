package rpc

import (
	"google.golang.org/protobuf/types/known/structpb"
)

func String(in *structpb.Struct, key string) string {
	return in.GetFields()[key].GetStringValue()
}

func Int(in *structpb.Struct, key string) int64 {
	return int64(in.GetFields()[key].GetNumberValue())
}

func Bool(in *structpb.Struct, key string) bool {
	return in.GetFields()[key].GetBoolValue()
}

// OptionalBool is nil unless key holds a bool.
func OptionalBool(in *structpb.Struct, key string) *bool {
	v, ok := in.GetFields()[key]
	if !ok {
		return nil
	}
	if _, isBool := v.GetKind().(*structpb.Value_BoolValue); !isBool {
		return nil
	}
	b := v.GetBoolValue()
	return &b
}

// OptionalInt is nil unless key holds a number.
func OptionalInt(in *structpb.Struct, key string) *int64 {
	v, ok := in.GetFields()[key]
	if !ok {
		return nil
	}
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return nil
	}
	n := int64(v.GetNumberValue())
	return &n
}

// OptionalString is nil unless key holds a string.
func OptionalString(in *structpb.Struct, key string) *string {
	v, ok := in.GetFields()[key]
	if !ok {
		return nil
	}
	if _, isString := v.GetKind().(*structpb.Value_StringValue); !isString {
		return nil
	}
	s := v.GetStringValue()
	return &s
}

func Strings(in *structpb.Struct, key string) []string {
	values := in.GetFields()[key].GetListValue().GetValues()
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := v.GetStringValue(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// List converts typed values for structpb.NewStruct, which only accepts
// []interface{} for lists.
func List[T any](items []T, conv func(T) interface{}) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, conv(item))
	}
	return out
}
