package email

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedParents lists elements whose character data is never rendered as page text.
var skippedParents = map[string]struct{}{
	"script": {},
	"style":  {},
}

// Extract returns the addresses found in the text of an HTML document, in document order.
// Duplicates are kept. A non-empty filter keeps only addresses ending in "@"+filter.
func Extract(body []byte, filter string) ([]string, error) {
	texts, err := TextNodes(body)
	if err != nil {
		return nil, err
	}
	var emails []string
	for _, text := range texts {
		emails = append(emails, FindAll(text)...)
	}
	return FilterByDomain(emails, filter), nil
}

// TextNodes parses body and returns the trimmed character data of every text and comment
// node whose immediate parent is not a script or style element.
func TextNodes(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var texts []string
	for _, root := range doc.Nodes {
		walk(root, &texts)
	}
	return texts, nil
}

func walk(n *html.Node, texts *[]string) {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		if !underSkippedParent(n) {
			*texts = append(*texts, strings.TrimSpace(n.Data))
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, texts)
	}
}

func underSkippedParent(n *html.Node) bool {
	if n.Parent == nil || n.Parent.Type != html.ElementNode {
		return false
	}
	_, skip := skippedParents[strings.ToLower(n.Parent.Data)]
	return skip
}

// FilterByDomain keeps the addresses that end with "@"+domain. The check is a literal,
// case-sensitive suffix match. An empty domain returns emails unchanged.
func FilterByDomain(emails []string, domain string) []string {
	if domain == "" {
		return emails
	}
	suffix := "@" + domain
	kept := make([]string, 0, len(emails))
	for _, e := range emails {
		if strings.HasSuffix(e, suffix) {
			kept = append(kept, e)
		}
	}
	return kept
}
