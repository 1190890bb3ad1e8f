package smallserver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagarc03/smallserver"
)

func TestDefaultMIMETable(t *testing.T) {
	table := smallserver.DefaultMIMETable(nil)

	tt := []struct {
		Ext  string
		Want string
	}{
		{Ext: "html", Want: "text/html"},
		{Ext: "HTML", Want: "text/html"},
		{Ext: ".css", Want: "text/css"},
		{Ext: "js", Want: "application/javascript"},
		{Ext: "json", Want: "application/json"},
		{Ext: "png", Want: "image/png"},
		{Ext: "jpg", Want: "image/jpeg"},
		{Ext: "svg", Want: "image/svg+xml"},
		{Ext: "unknown", Want: ""},
		{Ext: "", Want: ""},
	}

	for _, tc := range tt {
		t.Run(tc.Ext, func(t *testing.T) {
			assert.Equal(t, tc.Want, table.TypeByExtension(tc.Ext))
		})
	}
}

func TestDefaultMIMETable_Overrides(t *testing.T) {
	table := smallserver.DefaultMIMETable(map[string]string{
		".WebManifest": "application/manifest+json",
		"js":           "text/javascript",
		"empty":        "",
	})

	assert.Equal(t, "application/manifest+json", table.TypeByExtension("webmanifest"))
	assert.Equal(t, "text/javascript", table.TypeByExtension("js"))
	assert.Equal(t, "", table.TypeByExtension("empty"))

	// Overrides never leak into the shared built-in table.
	assert.Equal(t, "application/javascript", smallserver.DefaultMIMETable(nil).TypeByExtension("js"))
}
