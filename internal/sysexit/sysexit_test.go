package sysexit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paul-j-lucas/wrap-sub000/internal/sysexit"
)

func TestErrorf(t *testing.T) {
	err := sysexit.Errorf(sysexit.Usage, "bad flag: %s", "-z")
	assert.Equal(t, sysexit.Usage, sysexit.CodeOf(err))
	assert.Equal(t, "bad flag: -z", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, sysexit.Wrap(sysexit.IOErr, nil))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, sysexit.Software, sysexit.CodeOf(errors.New("boom")))
}

func TestCodeOfWrapped(t *testing.T) {
	base := sysexit.Errorf(sysexit.Config, "bad config")
	wrapped := errors.New("outer: " + base.Error())
	assert.Equal(t, sysexit.Software, sysexit.CodeOf(wrapped))

	unwrappable := &wrapErr{inner: base}
	assert.Equal(t, sysexit.Config, sysexit.CodeOf(unwrappable))
}

type wrapErr struct{ inner error }

func (w *wrapErr) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrapErr) Unwrap() error { return w.inner }

func TestCodeString(t *testing.T) {
	assert.Equal(t, "USAGE", sysexit.Usage.String())
	assert.Equal(t, "CANTCREAT", sysexit.CantCreat.String())
}
