//go:build unit
// +build unit

package cryptoalg

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePublicKey(t *testing.T) {
	key, err := ParsePublicKey("17:3233")
	require.NoError(t, err)
	assert.Equal(t, int64(17), key.E.Int64())
	assert.Equal(t, int64(3233), key.N.Int64())
	assert.Equal(t, "17:3233", key.String())
	assert.Equal(t, 12, key.BitLen())

	key, err = ParsePublicKey("  65537 : 3233\n")
	require.NoError(t, err)
	assert.Equal(t, "65537:3233", key.String())
}

func TestParsePrivateKey(t *testing.T) {
	key, err := ParsePrivateKey("2753:3233")
	require.NoError(t, err)
	assert.Equal(t, int64(2753), key.D.Int64())
	assert.Equal(t, "2753:3233", key.Encode())
}

func TestParseKey_InvalidEncoding(t *testing.T) {
	inputs := []string{
		"",
		"17",
		"17:3233:1",
		"seventeen:3233",
		"17:0x3233",
		"0:3233",
		"-17:3233",
		"17:1",
		"17:",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParsePublicKey(input)
			assert.ErrorIs(t, err, ErrInvalidKeyEncoding)

			_, err = ParsePrivateKey(input)
			assert.ErrorIs(t, err, ErrInvalidKeyEncoding)
		})
	}
}

func TestPrivateKey_Redaction(t *testing.T) {
	key := &PrivateKey{D: big.NewInt(2753), N: big.NewInt(3233)}

	for _, verb := range []string{"%v", "%+v", "%s", "%d", "%#v"} {
		out := fmt.Sprintf(verb, key)
		assert.NotContains(t, out, "2753", "verb %s", verb)
		assert.Contains(t, out, "REDACTED")
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("loaded key", "key", key)
	assert.NotContains(t, buf.String(), "2753")
	assert.Contains(t, buf.String(), "REDACTED")
}

func TestSignatureFile(t *testing.T) {
	signature := big.NewInt(1234567890)

	data := EncodeSignatureFile(signature)
	assert.Equal(t, "MTIzNDU2Nzg5MA==", string(data))

	decoded, err := DecodeSignatureFile(append(data, '\n'))
	require.NoError(t, err)
	assert.Equal(t, 0, signature.Cmp(decoded))
}

func TestParseSignature_Invalid(t *testing.T) {
	_, err := ParseSignature("-5")
	assert.Error(t, err)

	_, err = ParseSignature("12ab")
	assert.Error(t, err)

	_, err = DecodeSignatureFile([]byte("not base64!"))
	assert.Error(t, err)
}
