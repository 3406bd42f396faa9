// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package htmlutils provides utility functions for working with HTML.
package htmlutils

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Node2string appends the trimmed text content of n to sb, separating
// text nodes with a single space. Script and style bodies are skipped.
func Node2string(n *html.Node, sb *strings.Builder) {
	switch {
	case n.Type == html.TextNode:
		tmp := strings.Join(strings.Fields(n.Data), " ")
		if tmp == "" {
			return
		}

		if sb.Len() != 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(tmp)
	case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
		return
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			Node2string(child, sb)
		}
	}
}

// Validates that response seems to be an HTML response.
func hasHTMLContentType(media string) bool {
	const expectedMedia = "text/html"

	return strings.EqualFold(
		expectedMedia,
		media[0:min(len(media), len(expectedMedia))],
	)
}

// AsReader converts an HTTP response body to an io.Reader with the correct charset.
func AsReader(resp *http.Response) (io.Reader, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	media := resp.Header.Get("Content-Type")
	if !hasHTMLContentType(media) {
		return nil, fmt.Errorf("media type is %s", media)
	}

	rr, err := charset.NewReader(resp.Body, media)
	if err != nil {
		return nil, err
	}

	return rr, nil
}

// AsNode parses an io.Reader as an HTML node.
func AsNode(r io.Reader) (*html.Node, error) {
	n, err := html.Parse(r)
	if nil != err {
		return nil, fmt.Errorf("parsing body as HTML: %w", err)
	}

	return n, nil
}

// FindElement returns the first element named tag in document order, or nil.
func FindElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := FindElement(child, tag); found != nil {
			return found
		}
	}

	return nil
}

// FindByID returns the first element whose id attribute is id, or nil.
func FindByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && Attr(n, "id") == id {
		return n
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := FindByID(child, id); found != nil {
			return found
		}
	}

	return nil
}

// Attr returns the value of the attribute key of n, or "" when absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

// Scripts returns the external script sources and the concatenated body of
// the inline scripts under n.
func Scripts(n *html.Node) (sources []string, inline string) {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			if src := Attr(n, "src"); src != "" {
				sources = append(sources, src)
			} else {
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					sb.WriteString(c.Data)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sources, sb.String()
}
