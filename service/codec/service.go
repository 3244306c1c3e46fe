// Package codec implements the encode/decode collaborator: payloads travel
// as msgpack, local JSON documents and tar archives are validated and packed
// before any remote call is issued. Every failure surfaces as a payload
// error, independent of source.
package codec

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/viant/afs"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/stratocloud/cascade/model/types"
)

// Service encodes and decodes payloads.
type Service struct {
	fs afs.Service
}

// New creates a codec service backed by the abstract file system, so
// documents and archives can be loaded from file, embed or mem URLs alike.
func New() *Service {
	return &Service{fs: afs.New()}
}

// Encode packs a structured record into msgpack bytes.
func (s *Service) Encode(value interface{}) ([]byte, error) {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return nil, types.NewPayloadError("encode", err)
	}
	return data, nil
}

// Decode unpacks msgpack bytes into a structured record.
func (s *Service) Decode(data []byte) (interface{}, error) {
	var value interface{}
	if err := msgpack.Unmarshal(data, &value); err != nil {
		return nil, types.NewPayloadError("decode", err)
	}
	return value, nil
}

// DecodeMap unpacks msgpack bytes into a string-keyed map, the shape used by
// runlists and manifests.
func (s *Service) DecodeMap(data []byte) (map[string]interface{}, error) {
	var value map[string]interface{}
	if err := msgpack.Unmarshal(data, &value); err != nil {
		return nil, types.NewPayloadError("decode", err)
	}
	return value, nil
}

// EncodeDocument reads the JSON document at URL and re-encodes it as
// msgpack. An unreadable or unparseable document is a payload error.
func (s *Service) EncodeDocument(ctx context.Context, URL string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, types.NewPayloadError(URL, fmt.Errorf("unable to open document: %w", err))
	}
	var document interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, types.NewPayloadError(URL, fmt.Errorf("document is not valid JSON: %w", err))
	}
	return s.Encode(document)
}

// EncodeArchive reads the archive at URL, validates it is a tar archive
// (optionally gzip compressed) and packs its raw bytes as msgpack.
func (s *Service) EncodeArchive(ctx context.Context, URL string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, types.NewPayloadError(URL, fmt.Errorf("unable to open archive: %w", err))
	}
	if err := validateTar(data); err != nil {
		return nil, types.NewPayloadError(URL, err)
	}
	return s.Encode(data)
}

// validateTar checks that data holds at least one readable tar header.
func validateTar(data []byte) error {
	var reader io.Reader = bytes.NewReader(data)
	if gz, err := gzip.NewReader(bytes.NewReader(data)); err == nil {
		defer gz.Close()
		reader = gz
	}
	if _, err := tar.NewReader(reader).Next(); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("archive is empty")
		}
		return fmt.Errorf("not a tar archive: %w", err)
	}
	return nil
}
