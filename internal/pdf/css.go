package pdf

import (
	"strings"
	"text/template"

	"github.com/mahdiarghyani/portfolio/internal/content"
)

// printCSS is injected into the resume page before printing. Page margins
// are zero and the wrapper border stands in for them, which keeps RTL
// pages from being clipped.
var printCSS = template.Must(template.New("print.css").Parse(`
@page { size: A4; margin: 0; }

* {
  box-shadow: none !important;
  word-break: normal !important;
  overflow-wrap: break-word !important;
  hyphens: none !important;
  -webkit-hyphens: none !important;
  print-color-adjust: exact !important;
  -webkit-print-color-adjust: exact !important;
}

html { direction: {{.Dir}} !important; }

html, body {
  margin: 0 !important;
  padding: 0 !important;
  background: white !important;
  min-height: auto !important;
  width: 100% !important;
}

.resume-wrapper {
  background: white !important;
  border: 0.7cm solid white !important;
  padding: 0 !important;
  display: block !important;
  margin: 0 !important;
  width: 100% !important;
  box-sizing: border-box !important;
  break-inside: auto !important;
  page-break-inside: auto !important;
}

.resume-wrapper .resume-container {
  box-shadow: none !important;
  max-width: 100% !important;
  width: 100% !important;
  margin: 0 !important;
  padding: 0 !important;
}

.resume-wrapper .resume-content {
  padding: 0.7rem !important;
  width: 100% !important;
  box-sizing: border-box !important;
}

section {
  margin-bottom: {{.SectionGap}} !important;
  page-break-inside: auto !important;
  break-inside: auto !important;
}
section:last-child { margin-bottom: 0 !important; }

.resume-content > div:first-child {
  margin-bottom: 0.5rem !important;
  padding-bottom: 0 !important;
}

section h2 {
  margin-bottom: 0.5rem !important;
  padding-bottom: 0.25rem !important;
  page-break-after: avoid !important;
  break-after: avoid !important;
}

section > div { margin-bottom: {{.BlockGap}} !important; }
section > div:last-child { margin-bottom: 0 !important; }

ul { margin-top: 0.4rem !important; }

ul li {
  margin-bottom: {{.ItemGap}} !important;
  line-height: 1.5 !important;
  position: relative !important;
  padding-{{.Start}}: 1.2rem !important;
  padding-{{.End}}: 0 !important;
}

ul li::before {
  content: "\2022" !important;
  color: black !important;
  font-weight: bold !important;
  position: absolute !important;
  top: -0.1rem !important;
  {{.Start}}: 0 !important;
  {{.End}}: auto !important;
  width: 1rem !important;
  display: inline-block !important;
  opacity: 1 !important;
}

strong { font-weight: 700 !important; }

section > p { line-height: {{.LineHeight}} !important; }
`))

type cssParams struct {
	Dir        string
	Start, End string
	SectionGap string
	BlockGap   string
	ItemGap    string
	LineHeight string
}

func paramsFor(loc content.Locale) cssParams {
	if loc.RTL() {
		return cssParams{
			Dir: "rtl", Start: "right", End: "left",
			SectionGap: "1.5rem", BlockGap: "1.4rem", ItemGap: "0.4rem", LineHeight: "1.8",
		}
	}
	return cssParams{
		Dir: "ltr", Start: "left", End: "right",
		SectionGap: "0.85rem", BlockGap: "0.8rem", ItemGap: "0.25rem", LineHeight: "1.6",
	}
}

// PrintCSS returns the print stylesheet for loc. Persian pages get more
// generous spacing and bullets on the right.
func PrintCSS(loc content.Locale) string {
	var b strings.Builder
	// The template only substitutes fixed strings, so Execute cannot fail.
	_ = printCSS.Execute(&b, paramsFor(loc))
	return b.String()
}
