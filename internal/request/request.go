// Package request decodes and validates tree-construction requests read from
// JSON or YAML documents of the form
//
//	distance_matrix: [[0, 5, 9], [5, 0, 10], [9, 10, 0]]
//	labels: [A, B, C]
//
// Structural checks (presence, non-empty labels) run here through struct
// tags; numeric checks stay in package nj.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/njtree/nj"
)

// Format names a request encoding.
type Format string

const (
	// FormatJSON is a JSON object.
	FormatJSON Format = "json"
	// FormatYAML is a YAML mapping.
	FormatYAML Format = "yaml"
)

var (
	// ErrUnknownFormat is returned for an encoding other than JSON or YAML.
	ErrUnknownFormat = errors.New("request: unknown format")

	// ErrInvalid wraps struct-tag validation failures.
	ErrInvalid = errors.New("request: invalid request")
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Request is one tree-construction job.
type Request struct {
	// Name identifies the request in logs and batch output. Defaults to the
	// file name when loaded with Load.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	DistanceMatrix [][]float64 `json:"distance_matrix" yaml:"distance_matrix" validate:"required,dive,required"`
	Labels         []string    `json:"labels" yaml:"labels" validate:"required,dive,required"`
}

// Validate runs the struct-tag checks. Size and label-count mismatches are
// still reported by nj.New with its own sentinels.
func (r *Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s fails %q", ErrInvalid, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// Build validates r and runs Neighbor-Joining on it.
func (r *Request) Build(ctx context.Context, opts ...nj.Option) (*nj.Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return nj.BuildTreeContext(ctx, r.DistanceMatrix, r.Labels, opts...)
}

// Decode reads one request in the given format from rd and validates it.
func Decode(rd io.Reader, format Format) (*Request, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("request: read: %w", err)
	}

	var req Request
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err = dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("request: decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("request: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}

// FormatFromPath picks the encoding from the file extension: .json, or
// .yaml/.yml.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: extension of %q", ErrUnknownFormat, path)
	}
}

// Load reads and validates the request stored at path.
func Load(path string) (*Request, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer f.Close()

	req, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if req.Name == "" {
		req.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return req, nil
}
