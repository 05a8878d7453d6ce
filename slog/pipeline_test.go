package slog_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/negarit"
	"github.com/fwojciec/negarit/mock"
	negslog "github.com/fwojciec/negarit/slog"
	"github.com/stretchr/testify/assert"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("logs input and output sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Normalizer{NormalizeFn: strings.TrimSpace}

		n := negslog.NewLoggingNormalizer(inner, debugLogger(&buf))
		got := n.Normalize("  abc  ")

		assert.Equal(t, "abc", got)
		output := buf.String()
		assert.Contains(t, output, "msg=normalize")
		assert.Contains(t, output, "in_bytes=7")
		assert.Contains(t, output, "out_bytes=3")
		assert.Contains(t, output, "duration=")
	})

	t.Run("stays quiet at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Normalizer{NormalizeFn: strings.TrimSpace}

		negslog.NewLoggingNormalizer(inner, logger).Normalize("x")

		assert.Empty(t, buf.String())
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Extractor{
		ExtractFn: func(_ string) *negarit.Record {
			return &negarit.Record{
				Title: "PROCLAMATION No 1 2020",
				Parts: map[string]string{"PART ONE": "a", "PART TWO": "b"},
				Era:   negarit.EraPre2018,
			}
		},
	}

	rec := negslog.NewLoggingExtractor(inner, debugLogger(&buf)).Extract("text")

	assert.Equal(t, "PROCLAMATION No 1 2020", rec.Title)
	output := buf.String()
	assert.Contains(t, output, "msg=extract")
	assert.Contains(t, output, "era=pre-2018")
	assert.Contains(t, output, `title="PROCLAMATION No 1 2020"`)
	assert.Contains(t, output, "parts=2")
}
