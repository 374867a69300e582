package bindgen

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Record payloads cross the FFI boundary as a compact binary envelope: a
// single format-version byte followed by canonical CBOR. Canonical
// encoding keeps repeated runs byte-identical, which the generator's
// idempotence depends on.
const codecVersion = 1

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal encodes v into a versioned record envelope.
func Marshal(v any) ([]byte, error) {
	body, err := encMode.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+1)
	out = append(out, codecVersion)
	return append(out, body...), nil
}

// Unmarshal decodes a record envelope produced by [Marshal] or by a
// generated proxy on the TypeScript side.
func Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return errors.New("empty record envelope")
	}
	if data[0] != codecVersion {
		return fmt.Errorf("unsupported record envelope version %d (want %d)", data[0], codecVersion)
	}
	return decMode.Unmarshal(data[1:], v)
}
