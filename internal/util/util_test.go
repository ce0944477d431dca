package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	t.Parallel()

	cases := []struct {
		percent int
		width   int
		want    string
	}{
		{0, 10, "[----------]   0%"},
		{50, 10, "[#####-----]  50%"},
		{100, 10, "[##########] 100%"},
		{130, 4, "[####] 100%"},
		{-5, 4, "[----]   0%"},
		{42, 0, " 42%"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ProgressBar(tc.percent, tc.width), "ProgressBar(%d, %d)", tc.percent, tc.width)
	}
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "70%", FormatPercent(0.7))
}

func TestBrowserCommands(t *testing.T) {
	t.Parallel()

	const url = "http://localhost:20270"

	win := browserCommands("windows", url)
	require.Len(t, win, 2)
	assert.Equal(t, []string{"rundll32", "url.dll,FileProtocolHandler", url}, win[0])

	assert.Equal(t, [][]string{{"open", url}}, browserCommands("darwin", url))

	linux := browserCommands("linux", url)
	assert.Equal(t, []string{"xdg-open", url}, linux[0])
	for _, argv := range linux {
		assert.Equal(t, url, argv[len(argv)-1])
	}
}
