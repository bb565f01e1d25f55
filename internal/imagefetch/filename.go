package imagefetch

import (
	"crypto/md5" //nolint:gosec // short stable name suffix, not a security boundary
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxStemLen     = 46
	maxNameLen     = 50
	maxURLFileLen  = 100
	defaultExt     = ".jpg"
	invalidNameSet = `<>:"/\|?*`
)

// Sanitize turns s into an accent-free file name component: marks are
// stripped, characters invalid on common filesystems and whitespace become
// "_", and the result is capped at 50 bytes keeping the extension.
func Sanitize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	plain = strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(invalidNameSet, r), unicode.IsSpace(r), r > unicode.MaxASCII:
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, plain)
	plain = strings.Trim(plain, "._ ")
	if plain == "" {
		return "unknown"
	}
	if len(plain) > maxNameLen {
		ext := path.Ext(plain)
		if len(ext) > 5 {
			ext = ""
		}
		stem := strings.TrimSuffix(plain, ext)
		plain = stem[:maxStemLen] + ext
	}
	return plain
}

// FileName derives the local file name of an aircraft image from its URL,
// falling back to the aircraft name when the URL carries no usable name.
func FileName(id int64, name, rawURL string) string {
	if rawURL == "" {
		return fmt.Sprintf("%d_%s%s", id, Sanitize(name), defaultExt)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		sum := md5.Sum([]byte(rawURL)) //nolint:gosec // naming only
		return fmt.Sprintf("%d_%s%s", id, hex.EncodeToString(sum[:])[:10], defaultExt)
	}
	base := path.Base(u.Path)
	if path.Ext(base) == "" || len(base) > maxURLFileLen || base == "/" || base == "." {
		return fmt.Sprintf("%d_%s%s", id, Sanitize(name), defaultExt)
	}
	return fmt.Sprintf("%d_%s", id, Sanitize(base))
}
