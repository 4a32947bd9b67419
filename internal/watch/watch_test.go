package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_Classify(t *testing.T) {
	root := "/proj"
	rules := Rules{
		Roots:     []string{root},
		StyleFile: "/proj/style/main.scss",
		AssetsDir: "/proj/public",
		Extra:     []string{"/proj/locales"},
		Ignore:    []string{"/proj/target"},
	}

	tests := []struct {
		path string
		want Change
	}{
		{"/proj/src/app.rs", ChangeSource},
		{"/proj/Cargo.toml", ChangeSource},
		{"/proj/style/main.scss", ChangeStyle},
		{"/proj/style/_vars.scss", ChangeStyle},
		{"/proj/src/widget.css", ChangeStyle},
		{"/proj/public/favicon.ico", ChangeAssets},
		{"/proj/locales/en.ftl", ChangeSource},
		{"/proj/target/debug/app.rs", 0},
		{"/proj/src/.app.rs.swp", 0},
		{"/proj/src/app.rs~", 0},
		{"/proj/README.md", 0},
		{"/proj/publicity/x.rs", ChangeSource},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rules.Classify(tt.path), tt.path)
	}
}

func TestChange_String(t *testing.T) {
	assert.Equal(t, "none", Change(0).String())
	assert.Equal(t, "source+assets", (ChangeSource | ChangeAssets).String())
	assert.True(t, (ChangeSource | ChangeStyle).Has(ChangeStyle))
	assert.False(t, ChangeSource.Has(0))
}

func TestWatcher_RecordCoalesces(t *testing.T) {
	w, err := New(Rules{}, nil)
	require.NoError(t, err)
	defer w.Close()

	w.Record(ChangeSource)
	w.Record(ChangeStyle)
	w.Record(0)

	select {
	case <-w.Notify():
	default:
		t.Fatal("expected a pending notification")
	}
	select {
	case <-w.Notify():
		t.Fatal("notifications must coalesce")
	default:
	}
	assert.Equal(t, ChangeSource|ChangeStyle, w.Take())
	assert.Equal(t, Change(0), w.Take())
}

func TestWatcher_DetectsSourceChange(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "target"), 0o750))

	w, err := New(Rules{Roots: []string{root}, Ignore: []string{filepath.Join(root, "target")}}, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, "target", "ignored.rs"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "lib.rs"), []byte("fn main() {}"), 0o600))

	select {
	case <-w.Notify():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	assert.Equal(t, ChangeSource, w.Take())
}
