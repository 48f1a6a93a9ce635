package shapes

// builtins lists, by display form, the types the MessagePack runtime
// serializes without generated code.
var builtins = map[string]bool{
	"short": true, "int": true, "long": true,
	"ushort": true, "uint": true, "ulong": true,
	"float": true, "double": true, "bool": true,
	"byte": true, "sbyte": true, "decimal": true,
	"char": true, "string": true, "object": true,

	"System.Guid":           true,
	"System.TimeSpan":       true,
	"System.DateTime":       true,
	"System.DateTimeOffset": true,
	"MessagePack.Nil":       true,

	"short[]": true, "int[]": true, "long[]": true,
	"ushort[]": true, "uint[]": true, "ulong[]": true,
	"float[]": true, "double[]": true, "bool[]": true,
	"byte[]": true, "sbyte[]": true, "decimal[]": true,
	"char[]": true, "string[]": true,
	"System.DateTime[]": true,

	"System.ArraySegment<byte>":  true,
	"System.ArraySegment<byte>?": true,

	"UnityEngine.Vector2":          true,
	"UnityEngine.Vector3":          true,
	"UnityEngine.Vector4":          true,
	"UnityEngine.Quaternion":       true,
	"UnityEngine.Color":            true,
	"UnityEngine.Bounds":           true,
	"UnityEngine.Rect":             true,
	"UnityEngine.AnimationCurve":   true,
	"UnityEngine.RectOffset":       true,
	"UnityEngine.Gradient":         true,
	"UnityEngine.WrapMode":         true,
	"UnityEngine.GradientMode":     true,
	"UnityEngine.Keyframe":         true,
	"UnityEngine.Matrix4x4":        true,
	"UnityEngine.GradientColorKey": true,
	"UnityEngine.GradientAlphaKey": true,
	"UnityEngine.Color32":          true,
	"UnityEngine.LayerMask":        true,
	"UnityEngine.Vector2Int":       true,
	"UnityEngine.Vector3Int":       true,
	"UnityEngine.RangeInt":         true,
	"UnityEngine.RectInt":          true,
	"UnityEngine.BoundsInt":        true,

	"System.Reactive.Unit": true,
}

// IsBuiltin reports whether the type with the given display form is
// serialized natively.
func IsBuiltin(display string) bool {
	return builtins[display]
}
