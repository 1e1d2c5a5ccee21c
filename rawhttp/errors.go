package rawhttp

import "errors"

var (
  ErrNoContentLength   = errors.New("did not find content-length header")
  ErrHeadersIncomplete = errors.New("connection closed before the end of the headers")
)
