// Package federation holds the pieces shared by everything that speaks
// ActivityPub: sentinel errors for malformed remote objects and helpers for
// pulling values out of vocab properties.
package federation

import (
	"errors"
	"fmt"
	"net/url"

	"code.superseriousbusiness.org/activity/streams/vocab"
)

var (
	ErrMissingProperty        = errors.New("missing property")
	ErrUnprocessablePropValue = errors.New("unprocessable property value")
)

func Id(prop vocab.JSONLDIdProperty) (*url.URL, error) {
	if prop == nil {
		return nil, fmt.Errorf("%w: id", ErrMissingProperty)
	}

	iri := prop.GetIRI()
	if iri == nil {
		return nil, fmt.Errorf("%w: id", ErrMissingProperty)
	}
	return iri, nil
}

