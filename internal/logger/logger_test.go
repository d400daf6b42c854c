package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := l.WithContext(context.Background())
	ctx = WithLogger(ctx, map[string]interface{}{"run_id": "abc"})

	InfoLog(ctx, "matched %d pairs", 3)
	assert.Contains(t, buf.String(), `"run_id":"abc"`)
	assert.Contains(t, buf.String(), `"message":"matched 3 pairs"`)

	buf.Reset()
	ErrorLog(ctx, "export failed", assert.AnError)
	assert.Contains(t, buf.String(), `"error":"`+assert.AnError.Error()+`"`)
	assert.Contains(t, buf.String(), `"message":"export failed"`)
}
