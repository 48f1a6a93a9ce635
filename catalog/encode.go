package catalog

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/msgpack-codegen/errors"
)

// Format is a catalogue output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatCBOR:
		return f, nil
	}
	return "", errors.New(errors.PhaseEncode, errors.KindInvalidInput).
		Value(s).Detail("unknown catalogue format %q (want json, yaml or cbor)", s).Build()
}

// encMode encodes with Core Deterministic Encoding (RFC 8949 §4.2) so equal
// catalogues produce identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("catalog: CBOR encoder initialization failed: " + err.Error())
	}
}

// Marshal encodes c in the given format.
func Marshal(c *Catalog, format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.Marshal(c, json.Deterministic(true), jsontext.WithIndent("  "))
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = yaml.Marshal(c)
	case FormatCBOR:
		data, err = encMode.Marshal(c)
	default:
		return nil, errors.Unsupported(errors.PhaseEncode, "catalogue format "+string(format))
	}
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "encode "+string(format))
	}
	return data, nil
}

// Fingerprint returns the BLAKE3-256 digest of the deterministic CBOR
// encoding of c.
func Fingerprint(c *Catalog) ([32]byte, error) {
	data, err := Marshal(c, FormatCBOR)
	if err != nil {
		return [32]byte{}, err
	}
	return blake3.Sum256(data), nil
}

// FingerprintHex returns Fingerprint as a lowercase hex string.
func FingerprintHex(c *Catalog) (string, error) {
	sum, err := Fingerprint(c)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum[:]), nil
}
