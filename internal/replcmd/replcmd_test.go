package replcmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dekarrin/nmms"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Command{}, Parse(""))
	assert.Equal(Command{}, Parse("   "))
	assert.Equal(Command{Name: "quit"}, Parse("QUIT"))
	assert.Equal(Command{Name: "tell", Arg: "A |~ B"}, Parse("tell A |~ B"))
	assert.Equal(Command{Name: "trace", Arg: "on"}, Parse("TRACE on"))
}

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r := nmms.New()
	return NewSession(r, sentence.Propositional, &buf), &buf
}

func Test_Dispatch_tellThenAsk(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	s, out := newTestSession(t)

	quit, err := s.Dispatch(Parse("tell A |~ B"))
	require.NoError(err)
	assert.False(quit)
	assert.Contains(out.String(), "OK")
	out.Reset()

	quit, err = s.Dispatch(Parse("ask A => B"))
	require.NoError(err)
	assert.False(quit)
	assert.Contains(out.String(), "DERIVABLE")
	assert.NotContains(out.String(), "NOT DERIVABLE")
}

func Test_Dispatch_traceTogglesOutput(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	s, out := newTestSession(t)
	_, err := s.Dispatch(Parse("tell A |~ B"))
	require.NoError(err)

	out.Reset()
	_, err = s.Dispatch(Parse("trace on"))
	require.NoError(err)
	assert.Contains(out.String(), "trace on")

	out.Reset()
	_, err = s.Dispatch(Parse("ask A => B"))
	require.NoError(err)
	lineCount := strings.Count(out.String(), "\n")
	assert.Greater(lineCount, 1)
}

func Test_Dispatch_unknownCommand(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	s, out := newTestSession(t)
	quit, err := s.Dispatch(Parse("frobnicate"))
	require.NoError(err)
	assert.False(quit)
	assert.Contains(out.String(), "unknown command")
}

func Test_Dispatch_quit(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	s, _ := newTestSession(t)
	quit, err := s.Dispatch(Parse("quit"))
	require.NoError(err)
	assert.True(quit)
}

func Test_Dispatch_saveAndLoad(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	s, out := newTestSession(t)
	_, err := s.Dispatch(Parse("tell A |~ B"))
	require.NoError(err)

	dir := t.TempDir()
	file := dir + "/base.json"

	out.Reset()
	quit, err := s.Dispatch(Parse("save " + file))
	require.NoError(err)
	assert.False(quit)
	assert.Contains(out.String(), "saved")

	s2, out2 := newTestSession(t)
	quit, err = s2.Dispatch(Parse("load " + file))
	require.NoError(err)
	assert.False(quit)
	assert.Contains(out2.String(), "loaded")

	out2.Reset()
	quit, err = s2.Dispatch(Parse("ask A => B"))
	require.NoError(err)
	assert.Contains(out2.String(), "DERIVABLE")
}
