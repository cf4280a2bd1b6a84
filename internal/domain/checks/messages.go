package checks

import "fmt"

// catalog holds message formats per locale.
var catalog = map[string]map[string]string{
	"en-US": {
		"speakable_text.missing":       "This item may not have a label readable by screen readers.",
		"editable_desc.present":        "This editable item has a content description %q. Use a hint so screen readers announce the entered text.",
		"touch_target.small":           "This item's size is %dx%ddp. Consider making this touch target %ddp wide and %ddp high or larger.",
		"touch_target.not_run":         "This item is not clickable; its touch target size was not checked.",
		"duplicate_bounds.shared":      "This item's location on screen is the same as %d other clickable item(s) with the same bounds.",
		"duplicate_text.shared":        "This item's speakable text %q is identical to that of %d other item(s).",
		"redundant_desc.role":          "This item's content description %q includes the word %q. Screen readers already announce the item's role.",
		"redundant_desc.state":         "This item's content description %q includes the word %q. Screen readers already announce whether the item is checked.",
		"link_purpose.unclear":         "The link text %q does not describe where the link goes.",
		"text_contrast.low":            "The item's text contrast ratio is %.2f. This ratio is based on an estimated foreground color of #%06X and an estimated background color of #%06X. Consider increasing this item's text contrast ratio to %.2f or greater.",
		"text_contrast.not_run.colors": "No color information is available to compute this item's text contrast.",
		"text_contrast.not_run.alpha":  "The item's background is not opaque; its text contrast cannot be computed.",
		"text_contrast.not_run.flat":   "The item's screenshot region has a single color; its text contrast cannot be estimated.",
		"text_contrast.not_run.bounds": "The item is outside the screenshot; its text contrast cannot be estimated.",
		"class_name.missing":           "This clickable item has no class name. Accessibility services may not be able to describe its role.",
	},
}

// message is a Message resolved against catalog.
type message struct {
	key  string
	args []any
}

func msg(key string, args ...any) message {
	return message{key: key, args: args}
}

func (m message) Localize(locale string) (string, error) {
	table, ok := catalog[locale]
	if !ok {
		return "", fmt.Errorf("no messages for locale %q", locale)
	}
	format, ok := table[m.key]
	if !ok {
		return "", fmt.Errorf("no message %q for locale %q", m.key, locale)
	}
	return fmt.Sprintf(format, m.args...), nil
}
