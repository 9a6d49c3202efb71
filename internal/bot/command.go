package bot

import (
	"regexp"
	"strings"

	"github.com/pavelc4/aether-resolver/internal/resolver"
)

var urlRegex = regexp.MustCompile(`https?://[^\s]+`)

// ExtractURL returns the first http(s) URL in text.
func ExtractURL(text string) string {
	return urlRegex.FindString(text)
}

type Command struct {
	Name string // without the leading slash and any @botname suffix
	Args []string
}

// ParseCommand splits "/cmd@bot a b" into its name and arguments. ok is
// false when text is not a command.
func ParseCommand(text string) (Command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{}, false
	}

	name := strings.TrimPrefix(fields[0], "/")
	if idx := strings.Index(name, "@"); idx != -1 {
		name = name[:idx]
	}
	if name == "" {
		return Command{}, false
	}
	return Command{Name: strings.ToLower(name), Args: fields[1:]}, true
}

// downloadArgs picks the URL and the optional tier out of /dl arguments.
// The tier may come before or after the URL.
func downloadArgs(args []string) (string, resolver.Tier) {
	url := ""
	quality := resolver.TierBest
	for _, a := range args {
		if u := ExtractURL(a); u != "" && url == "" {
			url = u
			continue
		}
		if t, ok := resolver.ParseTier(a); ok {
			quality = t
		}
	}
	return url, quality
}
