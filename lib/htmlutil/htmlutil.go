package htmlutil

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("fbref.lib.htmlutil")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

type Anchor struct {
	Name string
	Href string
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsSpace(c) {
			newStr.WriteRune(' ')
			continue
		}
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText trims a piece of element text and collapses inner whitespace.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// GetAnchors returns the text and href of every node in `sel`, nodes
// with an unparsable or missing href are skipped.
func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}
		if href == "" {
			continue
		}

		link, err := url.Parse(href)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing url")
			continue
		}

		anchors = append(anchors, Anchor{
			Name: CleanText(GetText(n)),
			Href: link.String(),
		})
	}
	span.SetAttributes(attribute.Int("anchors", len(anchors)))

	return anchors
}

// Table is a flattened html table, every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Column returns the index of a column or -1.
func (t Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// FindTable finds the table with the given id, fbref ships most of its
// secondary tables inside html comments which are also searched.
func FindTable(ctx context.Context, doc *goquery.Document, id string) *goquery.Selection {
	_, span := tracer.Start(ctx, "FindTable", trace.WithAttributes(
		attribute.String("table_id", id),
	))
	defer span.End()

	selector := fmt.Sprintf(`table[id="%s"]`, id)
	sel := doc.Find(selector)
	if sel.Length() > 0 {
		return sel.First()
	}

	marker := fmt.Sprintf(`id="%s"`, id)
	for _, root := range doc.Nodes {
		comment := findComment(root, marker)
		if comment == nil {
			continue
		}
		inner, err := goquery.NewDocumentFromReader(strings.NewReader(comment.Data))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse commented table")
			return sel
		}
		span.AddEvent("table found inside comment")
		return inner.Find(selector).First()
	}
	return sel
}

func findComment(node *html.Node, marker string) *html.Node {
	if node.Type == html.CommentNode && strings.Contains(node.Data, marker) {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findComment(child, marker); found != nil {
			return found
		}
	}
	return nil
}

// ExtractTable flattens the table with the given id. Grouped headers are
// joined with the column header ("Performance" + "Gls" -> "Performance_Gls"),
// header rows repeated inside the body and spacer rows are dropped.
func ExtractTable(ctx context.Context, doc *goquery.Document, id string) (Table, bool) {
	sel := FindTable(ctx, doc, id)
	if sel.Length() == 0 {
		return Table{}, false
	}
	return parseTable(sel), true
}

func expandRow(tr *goquery.Selection) []string {
	var cells []string
	tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		span := 1
		if v, ok := cell.Attr("colspan"); ok {
			fmt.Sscanf(v, "%d", &span)
		}
		if span < 1 {
			span = 1
		}
		text := CleanText(cell.Text())
		for i := 0; i < span; i++ {
			cells = append(cells, text)
		}
	})
	return cells
}

func skipRow(tr *goquery.Selection) bool {
	class := tr.AttrOr("class", "")
	for _, c := range strings.Fields(class) {
		switch c {
		case "thead", "over_header", "spacer":
			return true
		}
	}
	return false
}

func parseTable(table *goquery.Selection) Table {
	headerRows := table.Find("thead tr")
	if headerRows.Length() == 0 {
		headerRows = table.Find("tr").First()
	}

	var groups []string
	var names []string
	headerRows.Each(func(i int, tr *goquery.Selection) {
		if i == headerRows.Length()-1 {
			names = expandRow(tr)
			return
		}
		groups = expandRow(tr)
	})

	columns := make([]string, len(names))
	seen := map[string]int{}
	for i, name := range names {
		col := name
		if i < len(groups) && groups[i] != "" {
			col = groups[i] + "_" + name
		}
		seen[col]++
		if seen[col] > 1 {
			col = fmt.Sprintf("%s_%d", col, seen[col])
		}
		columns[i] = col
	}

	var rows [][]string
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if skipRow(tr) {
			return
		}
		cells := expandRow(tr)
		if len(cells) == 0 {
			return
		}
		row := make([]string, len(columns))
		copy(row, cells)
		if len(columns) > 0 && row[0] == names[0] && len(cells) == len(names) && cells[len(cells)-1] == names[len(names)-1] {
			// repeated header row without a class
			return
		}
		rows = append(rows, row)
	})

	return Table{Columns: columns, Rows: rows}
}
