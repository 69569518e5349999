// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package log

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

// messages strips the timestamps.
func messages(buf *bytes.Buffer) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		_, msg, _ := strings.Cut(line, " ")
		out = append(out, msg)
	}
	return out
}

func TestLevels(t *testing.T) {
	for _, tc := range []struct {
		level Level
		want  []string
	}{
		{
			level: LevelDebug,
			want: []string{
				"[DEBUG] debug n=1",
				"[INFO] info",
				"[ERROR] error err=boom port=SPI0.0",
			},
		},
		{
			level: LevelInfo,
			want: []string{
				"[INFO] info",
				"[ERROR] error err=boom port=SPI0.0",
			},
		},
		{
			level: LevelError,
			want:  []string{"[ERROR] error err=boom port=SPI0.0"},
		},
	} {
		t.Run(string(tc.level), func(t *testing.T) {
			buf := capture(t, tc.level)

			Debug("debug", "n", 1)
			Info("info")
			Error("error", errors.New("boom"), "port", "SPI0.0")

			if diff := cmp.Diff(messages(buf), tc.want); diff != "" {
				t.Errorf("log difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestFormatKVs(t *testing.T) {
	for _, tc := range []struct {
		name string
		kv   []any
		want string
	}{
		{name: "empty"},
		{name: "pairs", kv: []any{"a", 1, "b", "x"}, want: " a=1 b=x"},
		{name: "odd", kv: []any{"a", 1, "b"}, want: " a=1"},
		{name: "non string key", kv: []any{2, 1, "b", true}, want: " b=true"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatKVs(tc.kv...); got != tc.want {
				t.Errorf("formatKVs() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTracer(t *testing.T) {
	buf := capture(t, LevelDebug)

	Tracer().Printf("il0373: cmd %#02x, %d bytes", 0x10, 4736)

	if diff := cmp.Diff(messages(buf), []string{"[DEBUG] il0373: cmd 0x10, 4736 bytes"}); diff != "" {
		t.Errorf("log difference (-got +want):\n%s", diff)
	}

	buf.Reset()
	SetLevel(LevelInfo)
	Tracer().Printf("hidden")
	if buf.Len() != 0 {
		t.Errorf("tracer wrote %q at INFO", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "Error", want: LevelError},
		{in: "verbose", wantErr: true},
	} {
		got, err := ParseLevel(tc.in)
		if gotErr := err != nil; gotErr != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
