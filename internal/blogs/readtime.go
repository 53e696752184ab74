package blogs

import "strings"

const wordsPerMinute = 200

// ReadingTime is ceil(words/200) where words are whitespace-separated tokens.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
