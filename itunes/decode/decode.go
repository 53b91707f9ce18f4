// Package decode turns raw store response bytes into plaintext documents.
// Responses may be AES-CBC encrypted (IV delivered in a response header)
// and gzip compressed, in that order, in any combination.
package decode

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// IVHeader carries the hex-encoded CBC initialization vector. Its absence
// means the response body is plaintext.
const IVHeader = "X-Apple-Crypto-IV"

// contentKey is the single fixed AES-128 key the store encrypts catalog
// pages with. It is part of the wire protocol, not configuration.
var contentKey = []byte{
	0x8a, 0x9d, 0xad, 0x39, 0x9f, 0xb0, 0x14, 0xc1,
	0x31, 0xbe, 0x61, 0x18, 0x20, 0xd7, 0x88, 0x95,
}

var (
	ErrBadIV            = errors.New("missing or malformed initialization vector")
	ErrDecryptFailed    = errors.New("decryption failed")
	ErrDecompressFailed = errors.New("decompression failed")
)

type Mode int

const (
	// Auto decrypts only when the IV header is present.
	Auto Mode = iota
	// Skip passes bytes through untouched.
	Skip
	// Force always decrypts and fails without a usable IV.
	Force
)

type Options struct {
	Decrypt Mode
	Gunzip  bool
}

func DefaultOptions() Options {
	return Options{Decrypt: Auto, Gunzip: true}
}

// Bytes runs the full pipeline and returns the plaintext document. On any
// failure no partial output is returned.
func Bytes(raw []byte, hdr http.Header, opts Options) ([]byte, error) {
	b := raw

	if opts.Decrypt != Skip {
		iv, ok, err := headerIV(hdr)
		if nil != err {
			return nil, err
		}
		switch {
		case ok:
			b, err = decrypt(b, iv)
			if nil != err {
				return nil, err
			}
		case opts.Decrypt == Force:
			return nil, fmt.Errorf("%w: %s header is absent", ErrBadIV, IVHeader)
		default:
			// Auto with no IV header: the store sent plaintext.
		}
	}

	if opts.Gunzip {
		out, err := gunzip(b)
		if nil != err {
			return nil, err
		}
		b = out
	}

	return b, nil
}

func headerIV(hdr http.Header) ([]byte, bool, error) {
	v := hdr.Get(IVHeader)
	if v == "" {
		return nil, false, nil
	}
	iv, err := hex.DecodeString(v)
	if nil != err {
		return nil, false, fmt.Errorf("%w: %s is not a hex string: %v", ErrBadIV, IVHeader, err)
	}
	if len(iv) != aes.BlockSize {
		return nil, false, fmt.Errorf("%w: expected %d bytes, got %d", ErrBadIV, aes.BlockSize, len(iv))
	}
	return iv, true, nil
}

func decrypt(b, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(contentKey)
	if nil != err {
		return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	if len(b) == 0 || len(b)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the block size", ErrDecryptFailed, len(b))
	}

	out := make([]byte, len(b))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, b)

	return unpad(out)
}

func unpad(b []byte) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, fmt.Errorf("%w: invalid padding length %d", ErrDecryptFailed, n)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("%w: inconsistent padding", ErrDecryptFailed)
		}
	}
	return b[:len(b)-n], nil
}

func gunzip(b []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(b))
	if nil != err {
		return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if nil != err {
		return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
	}
	if err := r.Close(); nil != err {
		return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
	}
	return out, nil
}
