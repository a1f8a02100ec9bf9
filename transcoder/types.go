package transcoder

import (
	"github.com/wippyai/copybook/transcoder/internal/types"
)

type FieldKind = types.Kind

const (
	KindText   = types.KindText
	KindZoned  = types.KindZoned
	KindBinary = types.KindBinary
	KindPacked = types.KindPacked
	KindGroup  = types.KindGroup
)

type CompiledRecord = types.CompiledRecord
type CompiledField = types.Field
