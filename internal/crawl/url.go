package crawl

import (
	"net/url"
	"strconv"
	"strings"

	urlutil "github.com/law-makers/stageradar/internal/utils/url"
	"github.com/law-makers/stageradar/pkg/models"
)

const (
	searchPath     = "/fr/jobs"
	defaultCountry = "FR"
)

// BuildPageURL returns the results URL for page n. Parameters keep the board's
// own order, which url.Values.Encode would sort away.
func BuildPageURL(base, country string, contract models.ContractType, term string, page int) string {
	if country == "" {
		country = defaultCountry
	}
	if contract == "" {
		contract = models.ContractInternship
	}

	params := [][2]string{
		{"refinementList[offices.country_code][]", country},
		{"refinementList[contract_type][]", string(contract)},
		{"query", term},
		{"page", strconv.Itoa(page)},
	}

	var b strings.Builder
	b.WriteString(urlutil.TrimBase(base))
	b.WriteString(searchPath)
	for i, p := range params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(escape(p[0]))
		b.WriteByte('=')
		b.WriteString(escape(p[1]))
	}
	return b.String()
}

// escape percent-encodes s, spaces included
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
