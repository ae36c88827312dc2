package textclean

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep only the label
	return urlPattern.ReplaceAllString(input, "")
}

// Plain strips markdown formatting and links, leaving the readable text with
// whitespace collapsed.
func Plain(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	root := blackfriday.New(blackfriday.WithNoExtensions()).Parse([]byte(input))

	var sb strings.Builder
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text, blackfriday.Code, blackfriday.CodeBlock, blackfriday.HTMLSpan:
			if entering {
				sb.Write(node.Literal)
			}
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			sb.WriteByte(' ')
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item, blackfriday.BlockQuote:
			if !entering {
				sb.WriteByte(' ')
			}
		}
		return blackfriday.GoToNext
	})

	return strings.Join(strings.Fields(RemoveLinks(sb.String())), " ")
}
