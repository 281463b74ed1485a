package export

import (
	"bytes"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"

	"github.com/law-makers/stageradar/pkg/models"
)

// encodeMarkdown renders the HTML table and converts it to a GFM table
func encodeMarkdown(table *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, tableNode(table)); err != nil {
		return nil, err
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	out, err := converter.ConvertString(buf.String())
	if err != nil {
		return nil, err
	}
	return []byte("# " + title + "\n\n" + strings.TrimSpace(out) + "\n"), nil
}
