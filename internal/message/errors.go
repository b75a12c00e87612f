package message

import "fmt"

// ParseError is returned when the payload attribute is not valid JSON.
type ParseError struct {
	Inner   error
	Payload string
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("payload is not valid JSON: %s", p.Inner)
}

func (p *ParseError) Unwrap() error {
	return p.Inner
}

func newParseError(payload string, err error) error {
	return &ParseError{
		Inner:   err,
		Payload: payload,
	}
}
