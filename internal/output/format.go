package output

import (
	"bufio"
	"bytes"
	"strings"
)

// Format renders requirements as newline-separated text. The result ends in
// a newline iff reqs is non-empty.
func Format(reqs []string) []byte {
	if len(reqs) == 0 {
		return []byte{}
	}

	var buf bytes.Buffer

	for _, r := range reqs {
		buf.WriteString(r)
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// ParseLines reads a requirements file back into its specifiers, skipping
// blank lines and "#" comments.
func ParseLines(data []byte) []string {
	var reqs []string

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		reqs = append(reqs, line)
	}

	return reqs
}
