package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()
	doc := parse(t, `<div id="main" class="a b">
		<p class="lead">First   <b>bold</b></p>
		<script>var x = 1;</script>
		<p>Second</p>
		<table><tr><th>Wingspan</th><td>35.8 m</td></tr></table>
	</div>`)

	main := Find(doc, ID("main"))
	require.NotNil(t, main)
	assert.True(t, Class("b")(main))
	assert.False(t, Class("ab")(main))

	assert.Equal(t, "First bold Second Wingspan 35.8 m", Text(main))
	assert.Len(t, FindAll(main, Tag("p")), 2)
	assert.Equal(t, "First bold", Text(Find(doc, All(Tag("p"), Class("lead")))))

	th := Find(doc, All(Tag("th"), TextMatches(func(s string) bool { return s == "Wingspan" })))
	require.NotNil(t, th)
	assert.Equal(t, "35.8 m", Text(FindNext(th, Tag("td"))))
	assert.Equal(t, "td", NextElement(th).Data)

	txt := FindString(doc, func(s string) bool { return strings.Contains(s, "Second") })
	require.NotNil(t, txt)
	assert.Equal(t, html.TextNode, txt.Type)
}

func TestCollapseSpace(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a b c", CollapseSpace("  a\n\tb   c "))
	assert.Empty(t, CollapseSpace(" \n "))
}
