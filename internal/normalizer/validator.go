package normalizer

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/orwarhol/slater-sites/pkg/metadata"
)

// ErrInvalidEncoding is returned for content that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// Validator checks that a content file can be normalized.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate splits content at its front matter. The first line must be exactly the
// delimiter and a later line must close the block.
func (v *Validator) Validate(content string) (*metadata.Block, error) {
	if !utf8.ValidString(content) {
		return nil, ErrInvalidEncoding
	}

	block, err := metadata.Split(content)
	if err != nil {
		return nil, fmt.Errorf("malformed front matter: %w", err)
	}

	return block, nil
}
