package extractor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func worksFixture() []byte {
	var data []byte

	data = append(data, 0x00, 0x01, 0xfe, 'W', 'P', '#', 0x02, '\n')
	data = append(data, "@@##\x03\n"...)
	data = append(data, "Autumn Letters\r\n"...)
	data = append(data, "I"...)
	data = append(data, 0x92)
	data = append(data, "ve known sorrow\n"...)
	data = append(data, '\n')
	data = append(data, "\t the end \x07\n"...)
	data = append(data, "Microsoft Works\n"...)
	data = append(data, "Arial\n"...)
	data = append(data, 0x00, 0x00, '\n')

	return data
}

func TestDecodeWorks(t *testing.T) {
	lines, err := DecodeWorks(worksFixture())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"WP#",
		"@@##",
		"Autumn Letters",
		"I’ve known sorrow",
		"",
		"the end",
		"Microsoft Works",
		"Arial",
		"",
	}, lines)
}

func TestDecodeWorks_FlushesLastRecord(t *testing.T) {
	lines, err := DecodeWorks([]byte("one\ntwo"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestTrimWorksNoise(t *testing.T) {
	lines := []string{"WP", "@@##", "Autumn Letters", "body line here", "", "end", "Microsoft Works", "Arial", ""}

	assert.Equal(t, []string{"Autumn Letters", "body line here", "", "end"}, TrimWorksNoise(lines))
	assert.Empty(t, TrimWorksNoise(nil))
}

func TestWorksExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "autumn.wps")
	require.NoError(t, os.WriteFile(path, worksFixture(), 0o644))

	text, err := NewWorksExtractor().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Autumn Letters\nI’ve known sorrow\n\nthe end\n", text)
}

func TestWorksExtractor_Failures(t *testing.T) {
	dir := t.TempDir()

	_, err := NewWorksExtractor().Extract(context.Background(), filepath.Join(dir, "missing.wps"))
	require.ErrorIs(t, err, ErrExtractionFailed)

	empty := filepath.Join(dir, "empty.wps")
	require.NoError(t, os.WriteFile(empty, []byte{0x00, 0x01, '\n', '\n'}, 0o644))

	_, err = NewWorksExtractor().Extract(context.Background(), empty)
	require.ErrorIs(t, err, ErrExtractionFailed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewWorksExtractor().Extract(ctx, empty)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCommandExtractor(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "poem.txt")
	require.NoError(t, os.WriteFile(path, []byte("Title\nline\n"), 0o644))

	ext, err := NewCommandExtractor([]string{"cat"}, 0)
	require.NoError(t, err)

	text, err := ext.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Title\nline\n", text)

	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte(" \n\n"), 0o644))

	_, err = ext.Extract(context.Background(), blank)
	require.ErrorIs(t, err, ErrExtractionFailed)

	_, err = ext.Extract(context.Background(), filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, ErrExtractionFailed)
}

func TestCommandExtractor_MissingProgram(t *testing.T) {
	_, err := NewCommandExtractor(nil, 0)
	require.ErrorIs(t, err, ErrNoCommand)

	ext, err := NewCommandExtractor([]string{"definitely-not-a-real-extractor-binary"}, 0)
	require.NoError(t, err)

	_, err = ext.Extract(context.Background(), "poem.wps")
	require.ErrorIs(t, err, ErrExtractionFailed)
}

func TestFunc(t *testing.T) {
	var ext Extractor = Func(func(_ context.Context, path string) (string, error) {
		return "text of " + path, nil
	})

	text, err := ext.Extract(context.Background(), "a.wps")
	require.NoError(t, err)
	assert.Equal(t, "text of a.wps", text)
}
