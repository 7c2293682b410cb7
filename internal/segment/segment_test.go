package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRaw = "@@\x01\r\n" +
	"{font}\r\n" +
	"Autumn Letters,\r\n" +
	"March 3, 1987\r\n" +
	"The leaves come down\r\n" +
	"like letters never sent\r\n" +
	"\r\n" +
	"\r\n" +
	"and I\r\n" +
	"read them all\r\n" +
	"Charlie\r\n" +
	"Microsoft Works Word Processor\r\n" +
	"Arial\r\n" +
	"abcd\r\n"

func TestSegment_Sample(t *testing.T) {
	skel := New(nil).Segment(sampleRaw)

	assert.Equal(t, "Autumn Letters", skel.Title)
	assert.Equal(t, "March 3, 1987", skel.DateCandidate)
	assert.True(t, skel.SignatureFound)
	assert.Equal(t, []string{
		"March 3, 1987",
		"The leaves come down",
		"like letters never sent",
		"",
		"and I",
		"read them all",
	}, skel.BodyLines)
	assert.NotContains(t, skel.ContentLines, "Arial")
	assert.Contains(t, skel.ContentLines, "Charlie")
}

func TestSegment_Empty(t *testing.T) {
	for _, raw := range []string{"", "\n\n", "\r\n  \r\n"} {
		skel := New(nil).Segment(raw)

		assert.Empty(t, skel.Title)
		assert.False(t, skel.HasDate())
		assert.False(t, skel.SignatureFound)
		assert.Empty(t, skel.BodyLines)
	}
}

func TestSegment_NoTitleInFirstFiveLines(t *testing.T) {
	long := strings.Repeat("x", 120)
	raw := strings.Repeat(long+"\n", 5) + "short line\n"

	skel := New(nil).Segment(raw)

	assert.Empty(t, skel.Title)
	require.Len(t, skel.BodyLines, 6)
	assert.Equal(t, long, skel.BodyLines[0])
}

func TestSegment_NumericDateLastMatchWins(t *testing.T) {
	raw := "Title\nwritten 1/2/85\nline one here\nline two here\nrevised 12/25/1990\n"

	skel := New(nil).Segment(raw)

	assert.Equal(t, "12/25/1990", skel.DateCandidate)
	// The revised line sits past the midpoint and doubles as the signature line.
	assert.True(t, skel.SignatureFound)
	assert.Equal(t, []string{"written 1/2/85", "line one here", "line two here"}, skel.BodyLines)
}

func TestSegment_NameMatchBeatsMidpointDate(t *testing.T) {
	raw := "Title\nfirst line of verse\nsecond line of verse\nCRS\nthird line here\nJune 1, 2001\n"

	skel := New(nil).Segment(raw)

	assert.True(t, skel.SignatureFound)
	assert.Equal(t, []string{"first line of verse", "second line of verse"}, skel.BodyLines)
	assert.Equal(t, "June 1, 2001", skel.DateCandidate)
}

func TestSegment_DateAboveNameStartsSignOff(t *testing.T) {
	raw := "Title\nfirst line of verse\nsecond line of verse\n\nthird line of verse\nMarch 3, 1987\n\nCharlie\n"

	skel := New(nil).Segment(raw)

	assert.True(t, skel.SignatureFound)
	assert.Equal(t, "March 3, 1987", skel.DateCandidate)
	assert.Equal(t, []string{"first line of verse", "second line of verse", "", "third line of verse"}, skel.BodyLines)
}

func TestSegment_EarlyDateIsNotSignature(t *testing.T) {
	raw := "Title\nJuly 4, 1976\nline a is long\nline b is long\nline c is long\nline d is long\n"

	skel := New(nil).Segment(raw)

	assert.False(t, skel.SignatureFound)
	assert.Len(t, skel.BodyLines, 5)
}

func TestSegment_TitleAndSignatureNeverInBody(t *testing.T) {
	inputs := []string{
		sampleRaw,
		"Charles\nCharles\nverse\n",
		"Solo\n",
		"Title\n\n\nCharlie\n\n",
		"Title\nbody one\nCHARLES\nbody two\nCharlie\n",
	}

	for _, raw := range inputs {
		skel := New(nil).Segment(raw)

		for _, line := range skel.BodyLines {
			if skel.Title != "" {
				assert.NotEqual(t, skel.Title, line, "title leaked into body for %q", raw)
			}

			assert.NotEqual(t, "Charlie", line)
			assert.NotEqual(t, "CHARLES", line)
		}
	}
}

func TestCollapseBlanks(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "Collapse run", in: []string{"a", "", "", "b"}, want: []string{"a", "", "b"}},
		{name: "Leading and trailing", in: []string{"", "a", "", ""}, want: []string{"a"}},
		{name: "All blank", in: []string{"", ""}, want: []string{}},
		{name: "Nil", in: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollapseBlanks(tt.in))
		})
	}
}

func TestLines(t *testing.T) {
	assert.Nil(t, Lines(""))
	assert.Equal(t, []string{"a", "b", ""}, Lines("a\r\nb\r\n"))
}
