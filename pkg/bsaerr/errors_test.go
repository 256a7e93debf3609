package bsaerr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorruptErrorUnwraps(t *testing.T) {
	err := &CorruptError{Where: "file record", Err: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "file record")
}

func TestInvalidUTF8ErrorUnwraps(t *testing.T) {
	err := &InvalidUTF8Error{Err: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestErrorMessagesNameTheOffendingValue(t *testing.T) {
	assert.Contains(t, (&UnknownVersionError{Version: 7}).Error(), "7")
	assert.Contains(t, (&StringTooLongError{Value: "x", MaxLen: 3}).Error(), "3")
	assert.Contains(t, (&HashCollisionError{A: "a", B: "b"}).Error(), "a")
	assert.Contains(t, (&HashCollisionError{A: "a", B: "b"}).Error(), "b")
	assert.Contains(t, (&CompressionNotSupportedError{Version: "v001"}).Error(), "v001")
	assert.Contains(t, (&UnsupportedVersionError{Name: "BA2 v001"}).Error(), "BA2 v001")
}

func TestDistinctErrorTypesAreNotEqual(t *testing.T) {
	var a error = &UnknownMagicError{Magic: [4]byte{1, 2, 3, 4}}
	var b error = &UnknownVersionError{Version: 1}
	assert.False(t, errors.Is(a, b))
}
