package content

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gotetra/pkg/schema"
)

var quiet = slog.New(slog.DiscardHandler)

func writeFile(t *testing.T, dir, name, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "overview.md", "# Overview\n")
	writeFile(t, dir, "trust.md", "# Trust\n\nis earned")
	src := NewDirSource(dir, schema.Default())
	ctx := context.Background()

	doc, err := src.Open(ctx, "overview")
	require.NoError(t, err)
	assert.Equal(t, "Overview", doc.Title)
	assert.Equal(t, "# Overview\n", doc.Markdown)

	doc, err = src.Open(ctx, "Trust")
	require.NoError(t, err)
	assert.Equal(t, "Trust", doc.Key)
	assert.Equal(t, filepath.Join(dir, "trust.md"), doc.Path)
	assert.Contains(t, doc.Markdown, "is earned")

	// no file, falls back to the schema note
	doc, err = src.Open(ctx, "Data")
	require.NoError(t, err)
	assert.Empty(t, doc.Path)
	assert.Equal(t, "# Data\n\n", doc.Markdown)

	_, err = src.Open(ctx, "Belief")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirSourceMissingTOCFile(t *testing.T) {
	src := NewDirSource(t.TempDir(), &schema.Schema{
		TOC: []schema.TOCEntry{{ID: "intro", Title: "Intro", Src: "missing.md"}},
	})

	_, err := src.Open(context.Background(), "intro")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirSourceWithoutDir(t *testing.T) {
	src := NewDirSource("", schema.Default())

	doc, err := src.Open(context.Background(), "identity")
	require.NoError(t, err)
	assert.Equal(t, "# Identity\n\n", doc.Markdown)
}

func TestDirSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDirSource("", schema.Default()).Open(ctx, "Data")
	assert.ErrorIs(t, err, context.Canceled)
}

// blockingSource holds the first request until it is canceled
type blockingSource struct {
	started chan struct{}
	once    sync.Once
}

func (s *blockingSource) Open(ctx context.Context, key string) (Document, error) {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.started)
		<-ctx.Done()
		return Document{}, ctx.Err()
	}
	return Document{Key: key, Markdown: "# " + key}, nil
}

type delivery struct {
	key string
	doc Document
	err error
}

func collect() (DeliverFunc, func() []delivery) {
	var mu sync.Mutex
	var got []delivery
	return func(key string, doc Document, err error) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, delivery{key, doc, err})
		}, func() []delivery {
			mu.Lock()
			defer mu.Unlock()
			return append([]delivery(nil), got...)
		}
}

func TestLoaderLastRequestWins(t *testing.T) {
	src := &blockingSource{started: make(chan struct{})}
	deliver, got := collect()
	l := NewLoader(src, deliver, quiet)
	defer l.Close()

	l.LoadKey("Trust")
	select {
	case <-src.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first load never started")
	}
	l.LoadKey("Truth")
	l.Wait()

	deliveries := got()
	require.Len(t, deliveries, 1)
	assert.NoError(t, deliveries[0].err)
	assert.Equal(t, "Truth", deliveries[0].doc.Key)
	assert.Equal(t, "Truth", l.LastKey())
}

func TestLoaderReportsErrors(t *testing.T) {
	deliver, got := collect()
	l := NewLoader(NewDirSource("", schema.Default()), deliver, quiet)
	defer l.Close()

	l.LoadKey("Nowhere")
	l.Wait()

	deliveries := got()
	require.Len(t, deliveries, 1)
	assert.Equal(t, "Nowhere", deliveries[0].key)
	assert.True(t, errors.Is(deliveries[0].err, ErrNotFound))
}

// a failed load is reported under its own key even when a newer request overtakes it
func TestLoaderErrorCarriesKey(t *testing.T) {
	var mu sync.Mutex
	var keys, last []string
	var l *Loader
	l = NewLoader(NewDirSource("", schema.Default()), func(key string, _ Document, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			l.LoadKey("Trust")
		}
		keys = append(keys, key)
		last = append(last, l.LastKey())
	}, quiet)
	defer l.Close()

	l.LoadKey("Nowhere")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(keys) == 2
	}, 5*time.Second, 10*time.Millisecond)
	l.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Nowhere", "Trust"}, keys)
	assert.Equal(t, "Trust", last[0])
}

func TestLoaderReload(t *testing.T) {
	deliver, got := collect()
	l := NewLoader(NewDirSource("", schema.Default()), deliver, quiet)
	defer l.Close()

	l.Reload()
	l.Wait()
	assert.Empty(t, got())

	l.LoadKey("Trust")
	l.Wait()
	l.Reload()
	l.Wait()

	deliveries := got()
	require.Len(t, deliveries, 2)
	assert.Equal(t, "Trust", deliveries[1].doc.Key)
}

func TestLoaderClosed(t *testing.T) {
	deliver, got := collect()
	l := NewLoader(NewDirSource("", schema.Default()), deliver, quiet)

	l.Close()
	l.LoadKey("Trust")
	l.Wait()
	assert.Empty(t, got())
}

func TestRenderHTML(t *testing.T) {
	out := string(RenderHTML("# Trust\n\nSee [[Truth]] and [docs](https://example.com).\n"))

	assert.Contains(t, out, `<h1 id="trust">Trust</h1>`)
	assert.Contains(t, out, `<a href="#key=Truth">Truth</a>`)
	assert.Contains(t, out, `<a href="https://example.com">docs</a>`)
}

func TestKeyFromLink(t *testing.T) {
	key, ok := KeyFromLink(KeyLinkPrefix + "Evidence")
	assert.True(t, ok)
	assert.Equal(t, "Evidence", key)

	_, ok = KeyFromLink("https://example.com")
	assert.False(t, ok)
}

func TestLinkKeys(t *testing.T) {
	out := LinkKeys("See [[Truth]] and [[ Data ]], not [x](y).")
	assert.Equal(t, "See [Truth](#key=Truth) and [Data](#key=Data), not [x](y).", out)

	key, ok := KeyFromLink("#key=Data")
	assert.True(t, ok)
	assert.Equal(t, "Data", key)
}
