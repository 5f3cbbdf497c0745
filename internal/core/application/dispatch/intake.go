package dispatch

import (
	"regexp"
	"strings"

	"dispatch/internal/pkg/errs"
)

var urlPattern = regexp.MustCompile(`(https?://[^\s]+)`)

// intakeFields is the result of splitting a free-form order message into
// the structured order fields.
type intakeFields struct {
	LocationLink string
	Items        string
}

// parseIntake extracts a location link and an item description from a
// free-form message. The first URL becomes the location link; everything
// around it becomes the items. A message with neither is rejected so junk
// text does not silently open orders.
func parseIntake(text string) (intakeFields, error) {
	link := urlPattern.FindString(text)
	items := strings.TrimSpace(strings.Replace(text, link, "", 1))

	if link == "" && items == "" {
		return intakeFields{}, errs.NewValueIsInvalidError("order message")
	}
	return intakeFields{LocationLink: link, Items: items}, nil
}
