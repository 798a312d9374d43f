package present

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"newswire/internal/story"
)

var (
	badgeBase = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	licensedStyle   = badgeBase.Background(lipgloss.Color("#10B981"))
	restrictedStyle = badgeBase.Background(lipgloss.Color("#F59E0B"))
	clearedStyle    = badgeBase.Background(lipgloss.Color("#3B82F6"))
	publicStyle     = badgeBase.Background(lipgloss.Color("#6B7280"))

	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// BadgeLabel maps a clearance mark to the label shown to users.
// Unknown marks display as PUBLIC.
func BadgeLabel(c story.Clearance) string {
	switch c {
	case story.ClearanceLicensed, story.ClearanceRestricted, story.ClearanceCleared:
		return string(c)
	default:
		return "PUBLIC"
	}
}

func Badge(c story.Clearance) string {
	label := BadgeLabel(c)
	switch c {
	case story.ClearanceLicensed:
		return licensedStyle.Render(label)
	case story.ClearanceRestricted:
		return restrictedStyle.Render(label)
	case story.ClearanceCleared:
		return clearedStyle.Render(label)
	default:
		return publicStyle.Render(label)
	}
}

// WriteStoryLine prints a one-line listing entry.
func WriteStoryLine(w io.Writer, s story.Story, now time.Time) error {
	_, err := fmt.Fprintf(w, "%s %s %s\n",
		Badge(s.ClearanceMark),
		titleStyle.Render(fmt.Sprintf("[%d] %s", s.ID, Truncate(s.Title, 80))),
		dimStyle.Render(FormatTimeAgo(s.PublishedDate, now)),
	)
	return err
}

// WriteStoryDetail prints the detail view of a story.
func WriteStoryDetail(w io.Writer, s story.Story, now time.Time) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", Badge(s.ClearanceMark), titleStyle.Render(s.Title))
	fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("%s · %s", FormatDate(s.PublishedDate), FormatTimeAgo(s.UpdatedAt, now))))
	if s.StatedLocation != "" {
		fmt.Fprintf(&b, "Location: %s\n", s.StatedLocation)
	}
	if len(s.Regions) > 0 {
		fmt.Fprintf(&b, "Regions: %s\n", strings.Join(s.Regions, ", "))
	}
	if s.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", s.Summary)
	}
	if s.MediaURL != "" {
		fmt.Fprintf(&b, "\nMedia: %s\n", s.MediaURL)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
