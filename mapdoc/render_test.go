// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package mapdoc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jcodagnone/filmloc/spatial"
	"github.com/jcodagnone/filmloc/utils/htmlutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(t *testing.T) *Document {
	t.Helper()

	overlay, err := LoadOverlay("testdata/world.json")
	require.NoError(t, err)

	return Build("Films of 2015", map[string]spatial.Point{
		"Betrayal":      {Lat: 29.9536991119385, Lng: -90.077751159668},
		"</script>Evil": {Lat: 1, Lng: 2},
	}, overlay)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testDocument(t)))

	root, err := htmlutils.AsNode(&buf)
	require.NoError(t, err)

	title := htmlutils.FindElement(root, "title")
	require.NotNil(t, title)

	var sb strings.Builder
	htmlutils.Node2string(title, &sb)
	assert.Equal(t, "Films of 2015", sb.String())

	mapDiv := htmlutils.FindByID(root, "map")
	require.NotNil(t, mapDiv)
	assert.Equal(t, "2", htmlutils.Attr(mapDiv, "data-markers"))

	sources, script := htmlutils.Scripts(root)
	assert.Contains(t, sources, "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js")
	assert.Contains(t, sources, "https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js")

	assert.Contains(t, script, "Betrayal")
	assert.Contains(t, script, "Locations with names")
	assert.Contains(t, script, "Clusters by the area")
	assert.Contains(t, script, "#3882EC")
	assert.Contains(t, script, "L.control.layers")
	assert.Contains(t, script, "L.Control.MiniMap")
	assert.Contains(t, script, "L.markerClusterGroup")
	assert.NotContains(t, script, "</script>Evil")
}

func TestRenderPopupIsText(t *testing.T) {
	const name = "<img src=x onerror=alert(1)>"

	doc := Build("Films of 2015", map[string]spatial.Point{name: {Lat: 1, Lng: 2}}, nil)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, doc))

	root, err := htmlutils.AsNode(&buf)
	require.NoError(t, err)

	_, script := htmlutils.Scripts(root)
	assert.Contains(t, script, "popup.textContent = m.name")
	assert.Contains(t, script, "bindPopup(popup)")
	assert.NotContains(t, script, "bindPopup(m.name)")
	assert.NotContains(t, script, "<img")
	assert.Nil(t, htmlutils.FindElement(root, "img"))
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "index.html")

	require.NoError(t, Save(path, testDocument(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>Films of 2015</title>")
}
