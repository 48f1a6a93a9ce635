package collector

import (
	"github.com/wippyai/msgpack-codegen/collector/internal/kind"
)

type Classification = kind.Classification

const (
	Builtin                = kind.Builtin
	Excluded               = kind.Excluded
	Array                  = kind.Array
	Enum                   = kind.Enum
	Union                  = kind.Union
	KnownGeneric           = kind.KnownGeneric
	CustomGeneric          = kind.CustomGeneric
	UnboundGenericTemplate = kind.UnboundGenericTemplate
	PlainObject            = kind.PlainObject
)
