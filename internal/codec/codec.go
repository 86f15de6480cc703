package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode writes Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, shortest integer and float forms, NaN as 0x7e00, no indefinite
// lengths. The same value always produces the same bytes.
var encMode cbor.EncMode

// decMode reads into map[string]any and int64 so decoded values have the
// same shapes the catalog is written in.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		IntDec:         cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
