// Package suggest ranks behavior-change levers that close a monthly
// funding gap.
package suggest

import "fmt"

// tip is the friendly phrasing for a variable-trim suggestion. The action
// template takes the formatted monthly impact.
type tip struct {
	title  string
	action string
}

// categoryTips keys on normalized category name. Categories outside the
// table fall back to genericTip. Kept as data so the suggestion vocabulary
// stays independently testable.
var categoryTips = map[string]tip{
	"Dining": {
		title:  "Cook in a little more often",
		action: "Swapping a couple of takeout meals for home cooking could free up about $%s/month",
	},
	"Restaurants": {
		title:  "Make restaurant nights an occasion",
		action: "Keeping one or two favorite spots and skipping the rest could save about $%s/month",
	},
	"Shopping": {
		title:  "Try a 48-hour rule on purchases",
		action: "Waiting two days before non-essential buys could trim about $%s/month",
	},
	"Rideshare": {
		title:  "Mix in transit or walking",
		action: "Replacing a few rides a week with transit could save about $%s/month",
	},
	"Entertainment": {
		title:  "Rotate your entertainment picks",
		action: "Choosing one paid outing or service at a time could free up about $%s/month",
	},
	"Travel": {
		title:  "Plan trips around deals",
		action: "Shifting travel to flexible dates and earlier bookings could save about $%s/month",
	},
	"Hobbies": {
		title:  "Pace hobby spending",
		action: "Spacing out gear and supply purchases could trim about $%s/month",
	},
}

func tipFor(category string, trimPercent float64) tip {
	if t, ok := categoryTips[category]; ok {
		return t
	}
	return tip{
		title:  fmt.Sprintf("Trim %s by ~%.0f%%", category, trimPercent*100),
		action: "Cap this category and aim for about $%s/month less",
	}
}
