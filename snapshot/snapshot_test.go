package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"linkdex"
)

func TestSaveLoad(t *testing.T) {
	t.Run("round-trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.ldx")

		entries := []linkdex.Entry{
			{Key: "alpha", Value: "https://example.com/1"},
			{Key: "bravo", Value: "https://example.com/2"},
			{Key: "charlie", Value: ""},
		}
		counts := map[string]uint64{
			"alpha": 12,
			"bravo": 3,
		}

		err := Save(path, entries, counts)
		assert.Equal(t, nil, err)

		loadedEntries, loadedCounts, err := Load(path)
		assert.Equal(t, nil, err)
		assert.Equal(t, entries, loadedEntries)
		assert.Equal(t, counts, loadedCounts)
	})

	t.Run("empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.ldx")

		err := Save(path, nil, map[string]uint64{})
		assert.Equal(t, nil, err)

		entries, counts, err := Load(path)
		assert.Equal(t, nil, err)
		assert.Equal(t, 0, len(entries))
		assert.Equal(t, 0, len(counts))
	})

	t.Run("overwrites-previous", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.ldx")

		err := Save(path, []linkdex.Entry{{Key: "old", Value: "1"}}, nil)
		assert.Equal(t, nil, err)
		err = Save(path, []linkdex.Entry{{Key: "new", Value: "2"}}, nil)
		assert.Equal(t, nil, err)

		entries, _, err := Load(path)
		assert.Equal(t, nil, err)
		assert.Equal(t, []linkdex.Entry{{Key: "new", Value: "2"}}, entries)
	})

	t.Run("missing-file", func(t *testing.T) {
		_, _, err := Load(filepath.Join(t.TempDir(), "missing.ldx"))
		assert.Equal(t, true, os.IsNotExist(err))
	})

	t.Run("bad-magic", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.ldx")
		err := os.WriteFile(path, []byte("NOPE000000"), 0o644)
		assert.Equal(t, nil, err)

		_, _, err = Load(path)
		assert.Equal(t, ErrBadMagic, err)
	})

	t.Run("corrupted-body", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.ldx")

		err := Save(path, []linkdex.Entry{{Key: "alpha", Value: "1"}}, nil)
		assert.Equal(t, nil, err)

		data, err := os.ReadFile(path)
		assert.Equal(t, nil, err)

		// flip the stored checksum so the body no longer matches
		data[6] ^= 0xff
		err = os.WriteFile(path, data, 0o644)
		assert.Equal(t, nil, err)

		_, _, err = Load(path)
		assert.Equal(t, ErrChecksumMismatch, err)
	})

	t.Run("no-tmp-file-left-behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "store.ldx")

		err := Save(path, []linkdex.Entry{{Key: "alpha", Value: "1"}}, nil)
		assert.Equal(t, nil, err)

		_, err = os.Stat(path + ".tmp")
		assert.Equal(t, true, os.IsNotExist(err))
	})
}

func TestSaveLoad_Store_Integration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.ldx")

	s := linkdex.NewStore()
	s.Put("alpha", "https://example.com/1")
	s.Put("bravo", "https://example.com/2")

	_, err := s.Get("alpha")
	assert.Equal(t, nil, err)
	_, err = s.Get("alpha")
	assert.Equal(t, nil, err)
	_, err = s.Get("bravo")
	assert.Equal(t, nil, err)

	err = Save(path, s.All(), s.Counts())
	assert.Equal(t, nil, err)

	entries, counts, err := Load(path)
	assert.Equal(t, nil, err)

	restored := linkdex.NewStore()
	restored.Restore(entries, counts)

	assert.Equal(t, []linkdex.PopularEntry{
		{Key: "alpha", Value: "https://example.com/1", Count: 2},
		{Key: "bravo", Value: "https://example.com/2", Count: 1},
	}, restored.TopPopular(5))

	v, err := restored.Get("bravo")
	assert.Equal(t, nil, err)
	assert.Equal(t, "https://example.com/2", v)
}
