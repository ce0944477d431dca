package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yolosplit/internal/config"
	"yolosplit/internal/splitter"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{errMissingField, http.StatusBadRequest},
		{fmt.Errorf("x: %w", config.ErrFractionOutOfRange), http.StatusBadRequest},
		{fmt.Errorf("image directory %q: %w", "/x", splitter.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%q: %w", "/x", splitter.ErrEmptyInput), http.StatusUnprocessableEntity},
		{fmt.Errorf("copy: %w: %w", splitter.ErrIO, errors.New("disk full")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), "statusFor(%v)", tc.err)
	}
}

func TestOptions_TrimsAndResolves(t *testing.T) {
	t.Parallel()

	h := NewHandler(config.DefaultConfig())
	opts, err := h.options(splitRequest{ImageDir: " /a ", LabelDir: "/b", OutputRoot: "/c\n"})
	require.NoError(t, err)
	assert.Equal(t, "/a", opts.ImageDir)
	assert.Equal(t, "/c", opts.OutputRoot)
	assert.Equal(t, 0.7, opts.Fraction)

	_, err = h.options(splitRequest{ImageDir: "/a", LabelDir: " ", OutputRoot: "/c"})
	assert.ErrorIs(t, err, errMissingField)

	_, err = h.options(splitRequest{ImageDir: "/a", LabelDir: "/b", OutputRoot: "/c", Fraction: -0.3})
	assert.ErrorIs(t, err, config.ErrFractionOutOfRange)
}

func TestReportStore_OneShotAndExpiry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.xlsx")
	old := filepath.Join(dir, "old.xlsx")
	for _, p := range []string{keep, old} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}

	s := newReportStore()
	expired := s.put(old, "run-old", -time.Second)
	token := s.put(keep, "run-keep", time.Minute)

	_, ok := s.get(expired)
	assert.False(t, ok, "expired token should be gone")
	assert.NoFileExists(t, old)

	item, ok := s.get(token)
	require.True(t, ok)
	assert.Equal(t, "run-keep", item.runID)

	s.delete(token)
	_, ok = s.get(token)
	assert.False(t, ok)
	assert.NoFileExists(t, keep)
}
