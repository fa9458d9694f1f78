package metadata

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pageWithLines(n int, lines ...string) Page {
	var boxes []WordBox
	for i, line := range lines {
		y := float64(i * 50)
		x := 0.0
		for _, word := range splitWords(line) {
			boxes = append(boxes, WordBox{Text: word, BBox: []float64{x, y, x + 40, y + 20}})
			x += 50
		}
	}
	return Page{PageNumber: n, WordBoxes: boxes}
}

func splitWords(line string) []string {
	var words []string
	current := ""
	for _, r := range line {
		if r == ' ' {
			if current != "" {
				words = append(words, current)
			}
			current = ""
			continue
		}
		current += string(r)
	}
	if current != "" {
		words = append(words, current)
	}
	return words
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name  string
		pages []Page
		want  string
	}{
		{
			name:  "full month name",
			pages: []Page{pageWithLines(1, "THE HERALD", "Thursday, October 5, 2023")},
			want:  "October 5, 2023",
		},
		{
			name:  "abbreviated month",
			pages: []Page{pageWithLines(1, "Sep 14 2021 edition")},
			want:  "Sep 14 2021",
		},
		{
			name:  "numeric date",
			pages: []Page{pageWithLines(1, "Printed 10/05/2023 locally")},
			want:  "10/05/2023",
		},
		{
			name:  "month preferred over numeric",
			pages: []Page{pageWithLines(1, "10/05/2023 and June 2020")},
			want:  "June 2020",
		},
		{
			name: "second page searched",
			pages: []Page{
				pageWithLines(1, "no dates here"),
				pageWithLines(2, "March 3, 1999"),
			},
			want: "March 3, 1999",
		},
		{
			name: "third page ignored",
			pages: []Page{
				pageWithLines(1, "nothing"),
				pageWithLines(2, "nothing either"),
				pageWithLines(3, "April 1, 2000"),
			},
			want: "",
		},
		{
			name:  "no date",
			pages: []Page{pageWithLines(1, "just words")},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDate(tt.pages))
		})
	}
}

func TestExtractDateLineLimit(t *testing.T) {
	lines := make([]string, 0, 32)
	for i := 0; i < 31; i++ {
		lines = append(lines, fmt.Sprintf("filler line %c", 'a'+i%26))
	}
	lines = append(lines, "July 4, 1976")

	got := ExtractDate([]Page{pageWithLines(1, lines...)})
	assert.Equal(t, "", got)
}
