package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestNamedLoggerWritesJSON(t *testing.T) {
	var b bytes.Buffer
	l := New(&b, InfoLevel).Named("http").Named("event")
	l.Debug("not visible")
	l.Info("visible", String("key", "value"), Int("num", 3))
	out := b.String()
	assert.Assert(t, !strings.Contains(out, "not visible"))
	assert.Assert(t, strings.Contains(out, `"logger":"http.event"`), out)
	assert.Assert(t, strings.Contains(out, `"key":"value"`), out)
	assert.Assert(t, strings.Contains(out, `"num":3`), out)
}

func TestSetLevel(t *testing.T) {
	var b bytes.Buffer
	l := New(&b, InfoLevel)
	l.Debug("first")
	l.SetLevel(DebugLevel)
	l.Debug("second")
	assert.Assert(t, !strings.Contains(b.String(), "first"))
	assert.Assert(t, strings.Contains(b.String(), "second"))
}

func TestWithFilter(t *testing.T) {
	var b bytes.Buffer
	opt, err := WithFilter("debug:calc info,warn,error:*")
	assert.NilError(t, err)
	l := New(&b, DebugLevel, opt)
	l.Named("calc").Debug("calc debug")
	l.Named("http").Debug("http debug")
	l.Named("http").Info("http info")
	out := b.String()
	assert.Assert(t, strings.Contains(out, "calc debug"), out)
	assert.Assert(t, !strings.Contains(out, "http debug"), out)
	assert.Assert(t, strings.Contains(out, "http info"), out)
}

func TestContext(t *testing.T) {
	l := New(&bytes.Buffer{}, InfoLevel)
	ctx := AddToContext(context.Background(), l)
	assert.Equal(t, GetFromContext(ctx), l)
	assert.Equal(t, GetFromContext(context.Background()), Default())
}
