package telegram

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/pavelc4/aether-resolver/internal/media"
	"github.com/pavelc4/aether-resolver/internal/resolver"
	"github.com/pavelc4/aether-resolver/internal/stats"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 300
	maxQualityLines   = 20
)

func FormatStart() string {
	return "👋 <b>Welcome to Aether Resolver!</b>\n\n" +
		"Send me a link from YouTube, TikTok, Instagram, X or any other supported site " +
		"and I'll reply with a direct download link."
}

func tierList() string {
	tiers := resolver.Tiers()
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func FormatHelp() string {
	return "<b>Aether Resolver Bot</b>\n\n" +
		"<b>Commands</b>\n" +
		"• /dl [URL] [quality] - Direct link, quality is one of " + tierList() + "\n" +
		"• /info [URL] - Video details\n" +
		"• /formats [URL] - Available qualities\n" +
		"• /start - Start the bot\n" +
		"• /help - Show this help message\n" +
		"• /stats - Show bot statistics (owner only)\n\n" +
		"Just send a URL to get the best quality link."
}

func FormatUnknown() string {
	return "Unknown command. Send /help to see what I can do."
}

func FormatResolving() string {
	return "🔎 Resolving..."
}

func FormatError(err error) string {
	return "❌ <b>Error:</b> " + html.EscapeString(err.Error())
}

func FormatDownload(d *media.Download, userName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", escapeTitle(d.Title))
	fmt.Fprintf(&b, "🌐 Platform : <code>%s</code>\n", html.EscapeString(d.Platform))
	if d.Duration != nil {
		fmt.Fprintf(&b, "⏱️ Duration : <code>%s</code>\n", FormatSeconds(*d.Duration))
	}
	fmt.Fprintf(&b, "🔗 <a href=\"%s\">Download link</a>", html.EscapeString(d.DownloadURL))
	if userName != "" {
		fmt.Fprintf(&b, "\n👤 By : %s", html.EscapeString(userName))
	}
	return b.String()
}

func FormatMetadata(m *media.Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", escapeTitle(m.Title))
	fmt.Fprintf(&b, "🌐 Platform : <code>%s</code>\n", html.EscapeString(m.Platform))
	if m.Uploader != nil {
		fmt.Fprintf(&b, "👤 Uploader : %s\n", html.EscapeString(*m.Uploader))
	}
	if m.Duration != nil {
		fmt.Fprintf(&b, "⏱️ Duration : <code>%s</code>\n", FormatSeconds(*m.Duration))
	}
	if m.UploadDate != nil {
		fmt.Fprintf(&b, "📅 Uploaded : <code>%s</code>\n", FormatUploadDate(*m.UploadDate))
	}
	if m.ViewCount != nil {
		fmt.Fprintf(&b, "👁️ Views : <code>%d</code>\n", *m.ViewCount)
	}
	if m.LikeCount != nil {
		fmt.Fprintf(&b, "❤️ Likes : <code>%d</code>\n", *m.LikeCount)
	}
	if m.Description != nil && *m.Description != "" {
		fmt.Fprintf(&b, "\n%s", html.EscapeString(truncate(*m.Description, maxDescriptionLen)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func FormatQualities(q *media.Qualities) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", escapeTitle(q.Title))
	fmt.Fprintf(&b, "🌐 Platform : <code>%s</code>\n\n", html.EscapeString(q.Platform))

	if len(q.Qualities) == 0 {
		b.WriteString("No qualities available.")
		return b.String()
	}

	for i, opt := range q.Qualities {
		if i == maxQualityLines {
			fmt.Fprintf(&b, "… and %d more", len(q.Qualities)-maxQualityLines)
			break
		}
		fmt.Fprintf(&b, "• <code>%s</code> %s", html.EscapeString(opt.Quality), html.EscapeString(opt.Ext))
		if kind := streamKind(opt); kind != "" {
			b.WriteString(" " + kind)
		}
		if opt.FileSize != nil && *opt.FileSize > 0 {
			fmt.Fprintf(&b, " · %s", stats.FormatBytes(uint64(*opt.FileSize)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func FormatStats(snap stats.Snapshot, sys *stats.SystemInfo) string {
	var b strings.Builder
	b.WriteString("<b>Resolver</b>\n")
	fmt.Fprintf(&b, "├ Uptime : <code>%s</code>\n", snap.UptimeText)
	fmt.Fprintf(&b, "├ Requests : <code>%d</code>\n", snap.Total)
	fmt.Fprintf(&b, "├ Succeeded : <code>%d</code>\n", snap.Succeeded)
	fmt.Fprintf(&b, "└ Failed : <code>%d</code>\n", snap.Failed)

	if len(snap.ByPlatform) > 0 {
		b.WriteString("\n<b>Platforms</b>\n")
		writeCounts(&b, snap.ByPlatform)
	}
	if len(snap.ByError) > 0 {
		b.WriteString("\n<b>Errors</b>\n")
		writeCounts(&b, snap.ByError)
	}

	if sys != nil {
		b.WriteString("\n<b>System</b>\n")
		fmt.Fprintf(&b, "├ Host : <code>%s (%s)</code>\n", html.EscapeString(sys.Hostname), html.EscapeString(sys.OS))
		fmt.Fprintf(&b, "├ CPU : <code>%d cores, %.2f%%</code>\n", sys.CPUCores, sys.CPUUsage)
		fmt.Fprintf(&b, "├ Memory : <code>%s / %s (%.1f%%)</code>\n",
			stats.FormatBytes(sys.MemUsed), stats.FormatBytes(sys.MemTotal), sys.MemPercent)
		fmt.Fprintf(&b, "├ Disk : <code>%s / %s (%.1f%%)</code>\n",
			stats.FormatBytes(sys.DiskUsed), stats.FormatBytes(sys.DiskTotal), sys.DiskPercent)
		fmt.Fprintf(&b, "├ Network : <code>↑%s ↓%s</code>\n", stats.FormatBytes(sys.NetSent), stats.FormatBytes(sys.NetRecv))
		fmt.Fprintf(&b, "├ Process : <code>pid %d, %.2f%% CPU, %s</code>\n",
			sys.ProcessPID, sys.ProcessCPU, stats.FormatBytes(sys.ProcessMem))
		fmt.Fprintf(&b, "└ Go : <code>%s, %d goroutines</code>", sys.GoVersion, sys.Goroutines)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeCounts(b *strings.Builder, counts map[string]int64) {
	keys := sortedKeys(counts)
	for i, k := range keys {
		branch := "├"
		if i == len(keys)-1 {
			branch = "└"
		}
		fmt.Fprintf(b, "%s %s : <code>%d</code>\n", branch, html.EscapeString(k), counts[k])
	}
}

// FormatSeconds renders a duration in seconds as m:ss or h:mm:ss.
func FormatSeconds(seconds float64) string {
	total := int64(seconds + 0.5)
	if total < 0 {
		total = 0
	}
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatUploadDate turns YYYYMMDD into YYYY-MM-DD and leaves anything else
// as it is.
func FormatUploadDate(date string) string {
	if len(date) != 8 {
		return date
	}
	for _, r := range date {
		if r < '0' || r > '9' {
			return date
		}
	}
	return date[:4] + "-" + date[4:6] + "-" + date[6:]
}

func streamKind(opt media.QualityOption) string {
	switch {
	case opt.HasVideo && opt.HasAudio:
		return "🎬"
	case opt.HasVideo:
		return "🎞️ video only"
	case opt.HasAudio:
		return "🎵 audio only"
	default:
		return ""
	}
}

func escapeTitle(title string) string {
	return html.EscapeString(truncate(html.UnescapeString(title), maxTitleLen))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
