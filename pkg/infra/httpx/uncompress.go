package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// AcceptEncoding lists every content coding DecodeChain understands.
const AcceptEncoding = "gzip, br, zstd, deflate"

// DecodeChain decodes a response body according to its Content-Encoding header.
// Chained encodings ("gzip, br") are undone in reverse order. For deflate both
// zlib-wrapped and raw streams are accepted. The bool result reports whether
// the body changed.
func DecodeChain(header http.Header, body []byte) ([]byte, bool, error) {
	ce := header.Get("Content-Encoding")
	if ce == "" {
		return body, false, nil
	}
	codings := strings.Split(ce, ",")
	changed := false
	for i := len(codings) - 1; i >= 0; i-- {
		var (
			out []byte
			err error
		)
		switch strings.TrimSpace(strings.ToLower(codings[i])) {
		case "br":
			out, err = io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
		case "gzip", "x-gzip":
			out, err = gunzip(body)
		case "zstd":
			out, err = unzstd(body)
		case "deflate":
			out, err = inflate(body)
		case "identity", "":
			continue
		default:
			return nil, false, fmt.Errorf("unsupported content-encoding: %q", codings[i])
		}
		if err != nil {
			return nil, false, fmt.Errorf("decode %s: %w", strings.TrimSpace(codings[i]), err)
		}
		body = out
		changed = true
	}
	return body, changed, nil
}

func gunzip(body []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer func() { _ = gr.Close() }()
	return io.ReadAll(gr)
}

func unzstd(body []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

func inflate(body []byte) ([]byte, error) {
	if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		defer func() { _ = zr.Close() }()
		return io.ReadAll(zr)
	}
	fr := flate.NewReader(bytes.NewReader(body))
	defer func() { _ = fr.Close() }()
	return io.ReadAll(fr)
}
