package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// AvailabilityPath is the lookup endpoint relative to the service base URL.
const AvailabilityPath = "/isUserNameAvailable"

// UserNameParam is the query parameter carrying the user name.
const UserNameParam = "userName"

// AvailabilityMessage is the success body of an availability lookup.
type AvailabilityMessage struct {
	IsAvailable bool   `json:"isAvailable"`
	UserName    string `json:"userName"`
}

// APIErrorMessage is the body the service sends with non-2xx responses.
type APIErrorMessage struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// Request is a single availability lookup. It is immutable once built.
type Request struct {
	userName string
	target   *url.URL
}

// NewRequest builds the lookup URL for userName against baseURL.
// It fails with an InvalidRequest error when either part is unusable.
func NewRequest(baseURL, userName string) (*Request, error) {
	if err := validateUserName(userName); err != nil {
		return nil, NewInvalidRequestError(err.Error())
	}

	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, NewInvalidRequestError(fmt.Sprintf("URL invalid: %v", err))
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, NewInvalidRequestError(fmt.Sprintf("URL invalid: unsupported scheme %q", base.Scheme))
	}
	if base.Host == "" {
		return nil, NewInvalidRequestError("URL invalid: missing host")
	}

	target := *base
	target.Path = strings.TrimRight(base.Path, "/") + AvailabilityPath
	target.RawQuery = url.Values{UserNameParam: []string{userName}}.Encode()
	target.Fragment = ""

	return &Request{userName: userName, target: &target}, nil
}

// UserName returns the name being looked up.
func (r *Request) UserName() string {
	return r.userName
}

// URL returns the fully built lookup URL.
func (r *Request) URL() string {
	return r.target.String()
}

func validateUserName(userName string) error {
	if userName == "" {
		return fmt.Errorf("user name is empty")
	}
	if !utf8.ValidString(userName) {
		return fmt.Errorf("user name is not valid UTF-8")
	}
	for _, r := range userName {
		if unicode.IsControl(r) {
			return fmt.Errorf("user name contains control characters")
		}
	}
	return nil
}
